package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	clientRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/client"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	staffRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/staff"
	packageRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/studiopackage"
	"github.com/m04kA/SMC-StudioService/internal/service/allocator"
	"github.com/m04kA/SMC-StudioService/internal/service/availability"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	roomRepo       RoomRepository
	packageRepo    PackageRepository
	clientRepo     ClientRepository
	staffRepo      StaffRepository
	configResolver ConfigResolver
	txManager      TransactionManager
	metrics        Metrics
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	packageRepo PackageRepository,
	clientRepo ClientRepository,
	staffRepo StaffRepository,
	configResolver ConfigResolver,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		packageRepo:    packageRepo,
		clientRepo:     clientRepo,
		staffRepo:      staffRepo,
		configResolver: configResolver,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%s, client=%s, room=%s, package=%v, date=%s, time=%s, force=%t",
		req.Actor, req.ClientID, req.RoomID, req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime, req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем зал
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if room.Archived {
		uc.logger.Warn("CreateBooking: room id=%s is archived", req.RoomID)
		return nil, ErrRoomArchived
	}

	// 4. Получаем клиента
	client, err := uc.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateBooking: client id=%s not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateBooking: failed to get client id=%s: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 5. Получаем пакет (для быстрой брони пакета нет)
	var pkg *domain.Package
	if req.PackageID != nil {
		pkg, err = uc.packageRepo.GetByID(ctx, *req.PackageID)
		if err != nil {
			if errors.Is(err, packageRepo.ErrPackageNotFound) {
				uc.logger.Warn("CreateBooking: package id=%s not found", *req.PackageID)
				return nil, ErrPackageNotFound
			}
			uc.logger.Error("CreateBooking: failed to get package id=%s: %v", *req.PackageID, err)
			return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}
	}

	// 6. Проверяем назначенных сотрудников
	for _, id := range staffIDs(req) {
		if _, err := uc.staffRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateBooking: staff id=%s not found", id)
				return nil, ErrStaffNotFound
			}
			uc.logger.Error("CreateBooking: failed to get staff id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	// 7. Получаем конфигурацию зала (ставка налога снимается в бронь)
	cfg, err := uc.configResolver.GetResolved(ctx, &req.RoomID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	// 8. Собираем бронь
	draft := allocator.Draft{
		ClientID:         client.ID,
		ClientName:       client.Name,
		RoomID:           room.ID,
		Date:             req.Date,
		StartTime:        req.StartTime,
		DurationHours:    req.DurationHours,
		Price:            req.Price,
		Status:           req.Status,
		LineItems:        req.LineItems,
		Discount:         req.Discount,
		PrimaryStaffID:   req.PrimaryStaffID,
		SecondaryStaffID: req.SecondaryStaffID,
		Notes:            req.Notes,
		QuickBooking:     req.PackageID == nil,
	}

	booking, err := allocator.Create(draft, pkg, cfg, req.Actor, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: draft rejected: %v", err)
		return nil, fmt.Errorf("create_booking: %w", err)
	}

	var (
		result     *domain.Booking
		overridden []uuid.UUID
	)

	// 9. Проверка пересечений и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Брони зала на этот день с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			StartDate: &booking.Date,
			EndDate:   &booking.Date,
			RoomID:    &booking.RoomID,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 9.2. Проверяем пересечения
		conflicts := availability.Conflicts(availability.CandidateFromBooking(booking), existing, nil)
		if len(conflicts) > 0 {
			conflictErr := domain.NewConflictError(booking.RoomID, conflicts)
			if !req.Force {
				uc.metrics.ObserveBookingConflict("create_booking")
				uc.logger.Warn("CreateBooking: %v", conflictErr)
				return fmt.Errorf("create_booking: %w", conflictErr)
			}
			overridden = conflictErr.BookingIDs
			uc.logger.Warn("CreateBooking: conflict overridden by actor=%s: %v", req.Actor, conflictErr)
		}

		// 9.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s status=%s", result.ID, result.Status)

	return &Response{
		Booking:             result,
		Totals:              ledger.ComputeTotals(result, cfg.TaxRate),
		OverriddenConflicts: overridden,
	}, nil
}
