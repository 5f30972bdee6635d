package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// StudioConfig represents the studio configuration
// Supports hierarchical configuration:
// 1. Room-specific override (room_id set)
// 2. Studio-wide (room_id NULL)
// 3. Deployment defaults from config.toml
// Любое поле может быть не задано (nil) - значение берется с уровня выше
type StudioConfig struct {
	ID                  int64
	RoomID              *uuid.UUID
	TaxRate             *decimal.Decimal
	TaxMode             *TaxMode
	OpenTime            *types.TimeString
	CloseTime           *types.TimeString
	PublicSlotMinutes   *int
	InternalSlotMinutes *int
	SettlementTolerance *int64
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsStudioWide returns true if this is the studio-wide configuration
func (c *StudioConfig) IsStudioWide() bool {
	return c.RoomID == nil
}

// IsRoomOverride returns true if this configuration overrides a single room
func (c *StudioConfig) IsRoomOverride() bool {
	return c.RoomID != nil
}

// ResolvedConfig полностью заполненная конфигурация, которую потребляют движки
type ResolvedConfig struct {
	TaxRate             decimal.Decimal
	TaxMode             TaxMode
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	PublicSlotMinutes   int
	InternalSlotMinutes int
	SettlementTolerance int64
}

// DefaultResolvedConfig значения по умолчанию, если в config.toml ничего не задано
func DefaultResolvedConfig() ResolvedConfig {
	return ResolvedConfig{
		TaxRate:             decimal.NewFromInt(DefaultTaxRatePercent),
		TaxMode:             TaxModeUMKM,
		OpenTime:            DefaultOpenTime,
		CloseTime:           DefaultCloseTime,
		PublicSlotMinutes:   DefaultPublicSlotMinutes,
		InternalSlotMinutes: DefaultInternalSlotMinutes,
		SettlementTolerance: DefaultSettlementTolerance,
	}
}

// ResolveConfig единственное место, где применяются значения по умолчанию
// Уровни применяются по порядку: от общего к частному, nil-уровни пропускаются
func ResolveConfig(defaults ResolvedConfig, levels ...*StudioConfig) ResolvedConfig {
	resolved := defaults

	for _, level := range levels {
		if level == nil {
			continue
		}
		if level.TaxRate != nil {
			resolved.TaxRate = *level.TaxRate
		}
		if level.TaxMode != nil {
			resolved.TaxMode = *level.TaxMode
		}
		if level.OpenTime != nil {
			resolved.OpenTime = *level.OpenTime
		}
		if level.CloseTime != nil {
			resolved.CloseTime = *level.CloseTime
		}
		if level.PublicSlotMinutes != nil {
			resolved.PublicSlotMinutes = *level.PublicSlotMinutes
		}
		if level.InternalSlotMinutes != nil {
			resolved.InternalSlotMinutes = *level.InternalSlotMinutes
		}
		if level.SettlementTolerance != nil {
			resolved.SettlementTolerance = *level.SettlementTolerance
		}
	}

	return resolved
}

// SlotAudience кто запрашивает слоты: публичный виджет или внутренний календарь
type SlotAudience string

const (
	AudiencePublic   SlotAudience = "public"
	AudienceInternal SlotAudience = "internal"
)

// GranularityFor возвращает шаг сетки слотов для аудитории
func (c ResolvedConfig) GranularityFor(audience SlotAudience) int {
	if audience == AudienceInternal {
		return c.InternalSlotMinutes
	}
	return c.PublicSlotMinutes
}
