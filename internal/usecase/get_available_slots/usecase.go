package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	"github.com/m04kA/SMC-StudioService/internal/service/availability"
)

// UseCase use case для получения сетки слотов зала
type UseCase struct {
	bookingRepo    BookingRepository
	roomRepo       RoomRepository
	configResolver ConfigResolver
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	configResolver ConfigResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		roomRepo:       roomRepo,
		configResolver: configResolver,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: room=%s, date=%s, duration=%dh, audience=%s",
		req.RoomID, req.Date.Format(domain.DateFormat), req.DurationHours, req.Audience)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем зал
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	if room.Archived {
		uc.logger.Warn("GetAvailableSlots: room id=%s is archived", req.RoomID)
		return nil, ErrRoomNotFound
	}

	// 4. Получаем конфигурацию зала с учетом иерархии
	cfg, err := uc.configResolver.GetResolved(ctx, &req.RoomID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve config: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve config: %v", ErrInternal, err)
	}

	response := &Response{
		Date:               req.Date,
		RoomID:             req.RoomID,
		DurationHours:      req.DurationHours,
		GranularityMinutes: cfg.GranularityFor(req.Audience),
		OpenTime:           cfg.OpenTime,
		CloseTime:          cfg.CloseTime,
		Slots:              []Slot{},
	}

	// 5. Для прошедших дат слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 6. Получаем бронирования зала на эту дату
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		StartDate: &req.Date,
		EndDate:   &req.Date,
		RoomID:    &req.RoomID,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Строим сетку
	slots, err := availability.ListSlots(availability.SlotQuery{
		Date:               req.Date,
		RoomID:             req.RoomID,
		DurationHours:      req.DurationHours,
		OperatingStart:     cfg.OpenTime,
		OperatingEnd:       cfg.CloseTime,
		GranularityMinutes: response.GranularityMinutes,
	}, bookings)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	closePastSlots(slots, req.Date, now)

	if req.OnlyAvailable {
		slots = availability.AvailableOnly(slots)
	}

	for _, s := range slots {
		response.Slots = append(response.Slots, Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Available: s.Available,
		})
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for room=%s, date=%s",
		len(response.Slots), req.RoomID, req.Date.Format(domain.DateFormat))

	return response, nil
}
