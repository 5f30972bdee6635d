package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomCapacity зал вмещает ровно одно бронирование одновременно
const RoomCapacity = 1

// Room физический зал студии
type Room struct {
	ID          uuid.UUID
	Name        string
	Description *string
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Package пакет услуг
type Package struct {
	ID            uuid.UUID
	Name          string
	DurationHours int
	BasePrice     int64
	Features      []string
	CostBreakdown []CostItem // снимается в бронирование при создании
	Archived      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalCost возвращает суммарную себестоимость пакета
func (p *Package) TotalCost() int64 {
	var total int64
	for _, c := range p.CostBreakdown {
		total += c.Amount
	}
	return total
}

// Client клиент студии
type Client struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StaffRole роль сотрудника
type StaffRole string

const (
	RoleOwner        StaffRole = "OWNER"
	RolePhotographer StaffRole = "PHOTOGRAPHER"
	RoleEditor       StaffRole = "EDITOR"
	RoleAdmin        StaffRole = "ADMIN"
)

// IsValid returns true for known roles
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleOwner, RolePhotographer, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// Staff сотрудник студии
type Staff struct {
	ID             uuid.UUID
	Name           string
	Role           StaffRole
	CommissionRate decimal.Decimal // процент, 0 - комиссия не начисляется
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasCommission returns true if a positive commission rate is configured
func (s *Staff) HasCommission() bool {
	return s.CommissionRate.IsPositive()
}

// AutomationRule правило автоматизации при смене статуса
type AutomationRule struct {
	ID               uuid.UUID
	Name             string
	TriggerStatus    BookingStatus
	TriggerPackageID *uuid.UUID // nil - для любого пакета
	TaskTemplates    []string
	AssigneeID       *uuid.UUID
	Position         int // порядок в конфигурации, первое совпадение выигрывает
	CreatedAt        time.Time
}

// Matches returns true if the rule applies to the given status and package
func (r *AutomationRule) Matches(status BookingStatus, packageID *uuid.UUID) bool {
	if r.TriggerStatus != status {
		return false
	}
	if r.TriggerPackageID == nil {
		return true
	}
	return packageID != nil && *packageID == *r.TriggerPackageID
}
