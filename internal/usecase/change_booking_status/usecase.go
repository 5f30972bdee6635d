package change_booking_status

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioService/internal/service/workflow"
	"github.com/m04kA/SMC-StudioService/pkg/txmanager"
)

// UseCase use case для смены статуса бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	automationRepo AutomationRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	automationRepo AutomationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		automationRepo: automationRepo,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case смены статуса
// Смена статуса и эффекты автоматизации сохраняются одной записью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeBookingStatus: booking=%s, status=%s, actor=%s", req.BookingID, req.Status, req.Actor)

	// 1. Валидация входных данных
	status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ChangeBookingStatus: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var response *Response

	// 3. Чтение, переход и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Загружаем бронь (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ChangeBookingStatus: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ChangeBookingStatus: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if req.ExpectedVersion != nil && *req.ExpectedVersion != booking.Version {
			uc.logger.Warn("ChangeBookingStatus: booking id=%s version %d, client saw %d",
				booking.ID, booking.Version, *req.ExpectedVersion)
			return ErrVersionConflict
		}

		// 3.2. Правила автоматизации в порядке конфигурации
		rules, err := uc.automationRepo.List(txCtx)
		if err != nil {
			uc.logger.Error("ChangeBookingStatus: failed to list automation rules: %v", err)
			return fmt.Errorf("%w: failed to list automation rules: %v", ErrInternal, err)
		}

		// 3.3. Переход
		updated, result, err := workflow.ApplyTransition(booking, status, rules, req.Actor, now)
		if err != nil {
			uc.logger.Warn("ChangeBookingStatus: transition rejected: %v", err)
			return fmt.Errorf("change_booking_status: %w", err)
		}

		// 3.4. Сохраняем с проверкой версии
		saved, err := uc.bookingRepo.Update(txCtx, updated)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrVersionConflict) {
				uc.logger.Warn("ChangeBookingStatus: booking id=%s was modified concurrently", updated.ID)
				return ErrVersionConflict
			}
			uc.logger.Error("ChangeBookingStatus: failed to update booking id=%s: %v", updated.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		if result.AutomationFired {
			uc.logger.Info("ChangeBookingStatus: rule id=%s added %d task(s) to booking id=%s",
				*result.RuleID, len(result.AddedTasks), saved.ID)
		}

		response = &Response{Booking: saved, Automation: result}
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("ChangeBookingStatus: aborted by concurrent write: %v", err)
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	uc.logger.Info("ChangeBookingStatus: booking id=%s %s -> %s",
		response.Booking.ID, response.Automation.PreviousStatus, response.Booking.Status)

	return response, nil
}
