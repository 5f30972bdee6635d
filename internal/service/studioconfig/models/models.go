package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Request модели

// UpdateConfigRequest запрос на изменение одного уровня конфигурации
// RoomID == nil - студийный уровень. Обновляются только переданные поля.
type UpdateConfigRequest struct {
	RoomID              *uuid.UUID        `json:"roomId,omitempty"`
	TaxRate             *decimal.Decimal  `json:"taxRate,omitempty"`
	TaxMode             *domain.TaxMode   `json:"taxMode,omitempty"`
	OpenTime            *types.TimeString `json:"openTime,omitempty"`
	CloseTime           *types.TimeString `json:"closeTime,omitempty"`
	PublicSlotMinutes   *int              `json:"publicSlotMinutes,omitempty"`
	InternalSlotMinutes *int              `json:"internalSlotMinutes,omitempty"`
	SettlementTolerance *int64            `json:"settlementTolerance,omitempty"`
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateConfigRequest) IsEmpty() bool {
	return r.TaxRate == nil && r.TaxMode == nil && r.OpenTime == nil && r.CloseTime == nil &&
		r.PublicSlotMinutes == nil && r.InternalSlotMinutes == nil && r.SettlementTolerance == nil
}

// ApplyToConfig переносит переданные поля в конфигурацию
func (r *UpdateConfigRequest) ApplyToConfig(c *domain.StudioConfig) {
	if r.TaxRate != nil {
		c.TaxRate = r.TaxRate
	}
	if r.TaxMode != nil {
		c.TaxMode = r.TaxMode
	}
	if r.OpenTime != nil {
		c.OpenTime = r.OpenTime
	}
	if r.CloseTime != nil {
		c.CloseTime = r.CloseTime
	}
	if r.PublicSlotMinutes != nil {
		c.PublicSlotMinutes = r.PublicSlotMinutes
	}
	if r.InternalSlotMinutes != nil {
		c.InternalSlotMinutes = r.InternalSlotMinutes
	}
	if r.SettlementTolerance != nil {
		c.SettlementTolerance = r.SettlementTolerance
	}
}

// Response модели

// ResolvedConfigResponse итоговая конфигурация после применения иерархии
type ResolvedConfigResponse struct {
	RoomID              *uuid.UUID       `json:"roomId,omitempty"`
	TaxRate             decimal.Decimal  `json:"taxRate"`
	TaxMode             domain.TaxMode   `json:"taxMode"`
	OpenTime            types.TimeString `json:"openTime"`
	CloseTime           types.TimeString `json:"closeTime"`
	PublicSlotMinutes   int              `json:"publicSlotMinutes"`
	InternalSlotMinutes int              `json:"internalSlotMinutes"`
	SettlementTolerance int64            `json:"settlementTolerance"`
}

// ConfigResponse один сохраненный уровень конфигурации
type ConfigResponse struct {
	ID                  int64             `json:"id"`
	RoomID              *uuid.UUID        `json:"roomId,omitempty"`
	TaxRate             *decimal.Decimal  `json:"taxRate,omitempty"`
	TaxMode             *domain.TaxMode   `json:"taxMode,omitempty"`
	OpenTime            *types.TimeString `json:"openTime,omitempty"`
	CloseTime           *types.TimeString `json:"closeTime,omitempty"`
	PublicSlotMinutes   *int              `json:"publicSlotMinutes,omitempty"`
	InternalSlotMinutes *int              `json:"internalSlotMinutes,omitempty"`
	SettlementTolerance *int64            `json:"settlementTolerance,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// ConfigListResponse ответ со списком уровней
type ConfigListResponse struct {
	Configs []ConfigResponse `json:"configs"`
}

// Методы конвертации

// FromResolved конвертирует итоговую конфигурацию в DTO
func FromResolved(roomID *uuid.UUID, c domain.ResolvedConfig) *ResolvedConfigResponse {
	return &ResolvedConfigResponse{
		RoomID:              roomID,
		TaxRate:             c.TaxRate,
		TaxMode:             c.TaxMode,
		OpenTime:            c.OpenTime,
		CloseTime:           c.CloseTime,
		PublicSlotMinutes:   c.PublicSlotMinutes,
		InternalSlotMinutes: c.InternalSlotMinutes,
		SettlementTolerance: c.SettlementTolerance,
	}
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.StudioConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		ID:                  c.ID,
		RoomID:              c.RoomID,
		TaxRate:             c.TaxRate,
		TaxMode:             c.TaxMode,
		OpenTime:            c.OpenTime,
		CloseTime:           c.CloseTime,
		PublicSlotMinutes:   c.PublicSlotMinutes,
		InternalSlotMinutes: c.InternalSlotMinutes,
		SettlementTolerance: c.SettlementTolerance,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список domain моделей в DTO
func FromDomainConfigList(configs []*domain.StudioConfig) *ConfigListResponse {
	result := &ConfigListResponse{Configs: make([]ConfigResponse, 0, len(configs))}
	for _, c := range configs {
		result.Configs = append(result.Configs, *FromDomainConfig(c))
	}
	return result
}
