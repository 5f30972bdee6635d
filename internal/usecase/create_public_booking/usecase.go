package create_public_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	clientRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/client"
	packageRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/studiopackage"
	"github.com/m04kA/SMC-StudioService/internal/service/allocator"
	"github.com/m04kA/SMC-StudioService/internal/service/availability"
)

// UseCase use case для заявки с публичного виджета
type UseCase struct {
	bookingRepo    BookingRepository
	roomRepo       RoomRepository
	packageRepo    PackageRepository
	clientRepo     ClientRepository
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
		configResolver: configResolver,
		txManager:      txManager,
		metrics:        metrics,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case публичной заявки
// Зал выбирается автоматически: первый по имени свободный зал.
// Заявка создается в статусе INQUIRY, клиент ищется по email или создается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePublicBooking: email=%s, package=%s, date=%s, time=%s",
		req.ClientEmail, req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePublicBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не может быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreatePublicBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем пакет, он должен быть активен
	pkg, err := uc.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreatePublicBooking: package id=%s not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreatePublicBooking: failed to get package id=%s: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if pkg.Archived {
		uc.logger.Warn("CreatePublicBooking: package id=%s is archived", req.PackageID)
		return nil, ErrPackageNotFound
	}

	// 5. Часы работы студии
	studioCfg, err := uc.configResolver.GetResolved(ctx, nil)
	if err != nil {
		uc.logger.Error("CreatePublicBooking: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}
	if !withinOperatingHours(req.StartTime, pkg.DurationHours, studioCfg) {
		uc.logger.Warn("CreatePublicBooking: %s +%dh is outside %s-%s",
			req.StartTime, pkg.DurationHours, studioCfg.OpenTime, studioCfg.CloseTime)
		return nil, ErrOutsideOperatingHours
	}

	var response *Response

	// 6. Выбор зала, поиск клиента и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Активные залы по имени
		rooms, err := uc.roomRepo.List(txCtx, false)
		if err != nil {
			uc.logger.Error("CreatePublicBooking: failed to list rooms: %v", err)
			return fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
		}

		// 6.2. Все брони дня с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.List(txCtx, domain.BookingsFilter{
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreatePublicBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.3. Первый свободный зал
		room, cfg, err := uc.pickRoom(txCtx, rooms, existing, req, pkg.DurationHours)
		if err != nil {
			return err
		}
		if room == nil {
			uc.metrics.ObserveBookingConflict("create_public_booking")
			uc.logger.Warn("CreatePublicBooking: no free room on %s at %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 6.4. Клиент по email
		client, created, err := uc.findOrCreateClient(txCtx, req)
		if err != nil {
			return err
		}

		// 6.5. Собираем заявку
		booking, err := allocator.Create(allocator.Draft{
			ClientID:   client.ID,
			ClientName: client.Name,
			RoomID:     room.ID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			Status:     domain.StatusInquiry,
			Notes:      req.Notes,
		}, pkg, cfg, client.ID, now)
		if err != nil {
			uc.logger.Warn("CreatePublicBooking: draft rejected: %v", err)
			return fmt.Errorf("create_public_booking: %w", err)
		}

		// 6.6. Сохраняем
		saved, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreatePublicBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		response = &Response{Booking: saved, RoomName: room.Name, NewClient: created}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreatePublicBooking: created inquiry id=%s in room=%s", response.Booking.ID, response.RoomName)
	return response, nil
}

// pickRoom возвращает первый зал, в часы работы которого укладывается сессия и где нет пересечений
func (uc *UseCase) pickRoom(
	ctx context.Context,
	rooms []*domain.Room,
	existing []*domain.Booking,
	req *Request,
	durationHours int,
) (*domain.Room, domain.ResolvedConfig, error) {
	for _, room := range rooms {
		roomID := room.ID
		cfg, err := uc.configResolver.GetResolved(ctx, &roomID)
		if err != nil {
			uc.logger.Error("CreatePublicBooking: failed to resolve config for room=%s: %v", room.ID, err)
			return nil, domain.ResolvedConfig{}, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
		}
		if !withinOperatingHours(req.StartTime, durationHours, cfg) {
			continue
		}

		candidate := availability.Candidate{
			Date:          req.Date,
			RoomID:        room.ID,
			StartMinutes:  req.StartTime.Minutes(),
			DurationHours: durationHours,
		}
		if !availability.HasConflict(candidate, existing, nil) {
			return room, cfg, nil
		}
	}
	return nil, domain.ResolvedConfig{}, nil
}

func (uc *UseCase) findOrCreateClient(ctx context.Context, req *Request) (*domain.Client, bool, error) {
	client, err := uc.clientRepo.GetByEmail(ctx, req.ClientEmail)
	if err == nil {
		return client, false, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("CreatePublicBooking: failed to get client by email: %v", err)
		return nil, false, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	client, err = uc.clientRepo.Create(ctx, &domain.Client{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.ClientName),
		Email: req.ClientEmail,
		Phone: strings.TrimSpace(req.ClientPhone),
	})
	if err != nil {
		uc.logger.Error("CreatePublicBooking: failed to create client: %v", err)
		return nil, false, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
	}

	uc.logger.Info("CreatePublicBooking: created client id=%s", client.ID)
	return client, true, nil
}
