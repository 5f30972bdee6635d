package reschedule_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	"github.com/m04kA/SMC-StudioService/internal/service/allocator"
	"github.com/m04kA/SMC-StudioService/internal/service/availability"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%s, actor=%s, force=%t",
		req.BookingID, req.Actor, req.ForceWithoutValidation)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var response *Response

	// 3. Чтение, проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем бронь (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if req.ExpectedVersion != nil && *req.ExpectedVersion != booking.Version {
			uc.logger.Warn("RescheduleBooking: booking id=%s version %d, client saw %d",
				booking.ID, booking.Version, *req.ExpectedVersion)
			return ErrVersionConflict
		}

		if booking.IsCancelled() {
			uc.logger.Warn("RescheduleBooking: booking id=%s is cancelled", booking.ID)
			return ErrBookingCancelled
		}

		// 3.2. Новый зал должен существовать
		if req.RoomID != nil && *req.RoomID != booking.RoomID {
			room, err := uc.roomRepo.GetByID(txCtx, *req.RoomID)
			if err != nil {
				if errors.Is(err, roomRepo.ErrRoomNotFound) {
					uc.logger.Warn("RescheduleBooking: room id=%s not found", *req.RoomID)
					return ErrRoomNotFound
				}
				uc.logger.Error("RescheduleBooking: failed to get room id=%s: %v", *req.RoomID, err)
				return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
			}
			if room.Archived {
				uc.logger.Warn("RescheduleBooking: room id=%s is archived", room.ID)
				return ErrRoomNotFound
			}
		}

		// 3.3. Применяем изменение расписания
		updated, err := allocator.Reschedule(booking, toPatch(req), req.Actor, now)
		if err != nil {
			uc.logger.Warn("RescheduleBooking: patch rejected: %v", err)
			return fmt.Errorf("reschedule_booking: %w", err)
		}

		// 3.4. Проверяем пересечения, исключая саму бронь
		overridden, err := uc.checkConflicts(txCtx, updated, req)
		if err != nil {
			return err
		}

		// 3.5. Сохраняем с проверкой версии
		saved, err := uc.bookingRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("RescheduleBooking: booking id=%s was modified concurrently", updated.ID)
				return ErrVersionConflict
			}
			uc.logger.Error("RescheduleBooking: failed to update booking id=%s: %v", updated.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		response = &Response{Booking: saved, OverriddenConflicts: overridden}
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("RescheduleBooking: aborted by concurrent write: %v", err)
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%s moved to %s %s room=%s",
		response.Booking.ID, response.Booking.Date.Format(domain.DateFormat),
		response.Booking.StartTime, response.Booking.RoomID)

	return response, nil
}

// checkConflicts возвращает ConflictError или, при ForceWithoutValidation, список проигнорированных броней
func (uc *UseCase) checkConflicts(ctx context.Context, updated *domain.Booking, req *Request) ([]uuid.UUID, error) {
	existing, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		StartDate: &updated.Date,
		EndDate:   &updated.Date,
		RoomID:    &updated.RoomID,
	})
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := availability.Conflicts(availability.CandidateFromBooking(updated), existing, &updated.ID)
	if len(conflicts) == 0 {
		return nil, nil
	}

	conflictErr := domain.NewConflictError(updated.RoomID, conflicts)
	if req.ForceWithoutValidation {
		uc.logger.Warn("RescheduleBooking: conflict overridden by actor=%s: %v", req.Actor, conflictErr)
		return conflictErr.BookingIDs, nil
	}

	uc.metrics.ObserveBookingConflict("reschedule_booking")
	uc.logger.Warn("RescheduleBooking: %v", conflictErr)
	return nil, fmt.Errorf("reschedule_booking: %w", conflictErr)
}
