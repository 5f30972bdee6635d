package studioconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	configRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/studioconfig"
	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig/models"
)

// Service сервис конфигурации студии
// Итоговая конфигурация собирается по иерархии: зал -> студия -> значения из config.toml
type Service struct {
	configRepo ConfigRepository
	roomRepo   RoomRepository
	defaults   domain.ResolvedConfig
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	roomRepo RoomRepository,
	defaults domain.ResolvedConfig,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		roomRepo:   roomRepo,
		defaults:   defaults,
		logger:     logger,
	}
}

// GetResolved возвращает итоговую конфигурацию для зала (или студии при roomID == nil)
// Отсутствие сохраненных уровней не ошибка: тогда действуют значения по умолчанию
func (s *Service) GetResolved(ctx context.Context, roomID *uuid.UUID) (domain.ResolvedConfig, error) {
	levels, err := s.configRepo.GetHierarchy(ctx, roomID)
	if err != nil {
		s.logger.Error("GetResolved: repository error for room=%v: %v", roomID, err)
		return domain.ResolvedConfig{}, fmt.Errorf("%w: GetResolved - repository error: %v", ErrInternal, err)
	}

	return domain.ResolveConfig(s.defaults, levels...), nil
}

// Get возвращает итоговую конфигурацию в виде DTO
func (s *Service) Get(ctx context.Context, roomID *uuid.UUID) (*models.ResolvedConfigResponse, error) {
	s.logger.Info("Get: fetching resolved config for room=%v", roomID)

	resolved, err := s.GetResolved(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return models.FromResolved(roomID, resolved), nil
}

// GetAll возвращает все сохраненные уровни конфигурации
func (s *Service) GetAll(ctx context.Context) (*models.ConfigListResponse, error) {
	configs, err := s.configRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или частично обновляет один уровень конфигурации
// Проверяется итог после применения иерархии, чтобы, например, open < close
// выполнялось с учетом унаследованных значений
func (s *Service) Upsert(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: updating config level room=%v", req.RoomID)

	// 1. Валидируем входные данные
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}

	// 2. Для переопределения зала проверяем, что зал существует
	if req.RoomID != nil {
		if _, err := s.roomRepo.GetByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				s.logger.Warn("Upsert: room id=%s not found", *req.RoomID)
				return nil, ErrRoomNotFound
			}
			s.logger.Error("Upsert: failed to get room id=%s: %v", *req.RoomID, err)
			return nil, fmt.Errorf("%w: Upsert - get room: %v", ErrInternal, err)
		}
	}

	// 3. Получаем текущий уровень, если он есть
	existing, err := s.configRepo.GetByRoom(ctx, req.RoomID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Upsert: failed to get existing config: %v", err)
		return nil, fmt.Errorf("%w: Upsert - get existing config: %v", ErrInternal, err)
	}

	level := &domain.StudioConfig{RoomID: req.RoomID}
	if existing != nil {
		copied := *existing
		level = &copied
	}
	req.ApplyToConfig(level)

	// 4. Проверяем итоговую конфигурацию с учетом остальных уровней
	if err := s.validateLevel(ctx, level); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 5. Сохраняем
	var saved *domain.StudioConfig
	if existing != nil {
		saved, err = s.configRepo.Update(ctx, existing.ID, level)
	} else {
		saved, err = s.configRepo.Create(ctx, level)
	}
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d (level: %s)", saved.ID, levelName(saved))
	return models.FromDomainConfig(saved), nil
}

// DeleteRoomOverride удаляет переопределение зала, после чего зал наследует студийные значения
func (s *Service) DeleteRoomOverride(ctx context.Context, roomID uuid.UUID) error {
	if err := s.configRepo.DeleteByRoom(ctx, roomID); err != nil {
		s.logger.Error("DeleteRoomOverride: repository error for room=%s: %v", roomID, err)
		return fmt.Errorf("%w: DeleteRoomOverride - repository error: %v", ErrInternal, err)
	}
	return nil
}

// validateLevel проверяет значения уровня и итог после применения иерархии
func (s *Service) validateLevel(ctx context.Context, level *domain.StudioConfig) error {
	if level.TaxRate != nil && (level.TaxRate.IsNegative() || level.TaxRate.GreaterThan(decimal.NewFromInt(domain.MaxTaxRatePercent))) {
		return fmt.Errorf("%w: taxRate must be between 0 and %d", ErrInvalidInput, domain.MaxTaxRatePercent)
	}
	if level.TaxRate != nil && !level.TaxRate.Equal(level.TaxRate.Round(2)) {
		return fmt.Errorf("%w: taxRate supports at most two decimal places", ErrInvalidInput)
	}
	if level.TaxMode != nil && !level.TaxMode.IsValid() {
		return fmt.Errorf("%w: unknown taxMode %q", ErrInvalidInput, *level.TaxMode)
	}
	if level.OpenTime != nil {
		if err := level.OpenTime.Validate(); err != nil {
			return fmt.Errorf("%w: openTime: %v", ErrInvalidInput, err)
		}
	}
	if level.CloseTime != nil {
		if err := level.CloseTime.Validate(); err != nil {
			return fmt.Errorf("%w: closeTime: %v", ErrInvalidInput, err)
		}
	}
	for name, v := range map[string]*int{"publicSlotMinutes": level.PublicSlotMinutes, "internalSlotMinutes": level.InternalSlotMinutes} {
		if v != nil && (*v < domain.MinSlotMinutes || *v > domain.MaxSlotMinutes) {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidInput, name, domain.MinSlotMinutes, domain.MaxSlotMinutes)
		}
	}
	if level.SettlementTolerance != nil && *level.SettlementTolerance < 0 {
		return fmt.Errorf("%w: settlementTolerance must not be negative", ErrInvalidInput)
	}

	levels, err := s.configRepo.GetHierarchy(ctx, level.RoomID)
	if err != nil {
		return fmt.Errorf("%w: validateLevel - get hierarchy: %v", ErrInternal, err)
	}

	// текущий уровень заменяет сохраненную версию себя
	merged := make([]*domain.StudioConfig, 0, len(levels)+1)
	for _, l := range levels {
		if (l.RoomID == nil) == (level.RoomID == nil) {
			continue
		}
		merged = append(merged, l)
	}
	merged = append(merged, level)

	resolved := domain.ResolveConfig(s.defaults, merged...)
	if !resolved.OpenTime.IsBefore(resolved.CloseTime) {
		return fmt.Errorf("%w: openTime %s must be before closeTime %s", ErrInvalidInput, resolved.OpenTime, resolved.CloseTime)
	}

	return nil
}

func levelName(c *domain.StudioConfig) string {
	if c.IsRoomOverride() {
		return "room"
	}
	return "studio"
}
