package manage_catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// CreateRoomRequest HTTP request model
type CreateRoomRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreateRoomRequest) ToDomain() *domain.Room {
	return &domain.Room{Name: r.Name, Description: r.Description}
}

// CostItemRequest статья себестоимости пакета
type CostItemRequest struct {
	Name   string `json:"name" validate:"required"`
	Amount int64  `json:"amount" validate:"gte=0"`
}

// CreatePackageRequest HTTP request model
type CreatePackageRequest struct {
	Name          string            `json:"name" validate:"required,max=100"`
	DurationHours int               `json:"durationHours" validate:"gte=1,lte=24"`
	BasePrice     int64             `json:"basePrice" validate:"gte=0"`
	Features      []string          `json:"features,omitempty" validate:"omitempty,dive,required"`
	CostBreakdown []CostItemRequest `json:"costBreakdown,omitempty" validate:"omitempty,dive"`
}

func (r *CreatePackageRequest) ToDomain() *domain.Package {
	costs := make([]domain.CostItem, 0, len(r.CostBreakdown))
	for _, c := range r.CostBreakdown {
		costs = append(costs, domain.CostItem{Name: c.Name, Amount: c.Amount})
	}
	return &domain.Package{
		Name:          r.Name,
		DurationHours: r.DurationHours,
		BasePrice:     r.BasePrice,
		Features:      r.Features,
		CostBreakdown: costs,
	}
}

// CreateClientRequest HTTP request model
type CreateClientRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"max=32"`
}

func (r *CreateClientRequest) ToDomain() *domain.Client {
	return &domain.Client{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// CreateStaffRequest HTTP request model
type CreateStaffRequest struct {
	Name           string           `json:"name" validate:"required,max=200"`
	Role           domain.StaffRole `json:"role" validate:"required,oneof=OWNER PHOTOGRAPHER EDITOR ADMIN"`
	CommissionRate decimal.Decimal  `json:"commissionRate"`
}

func (r *CreateStaffRequest) ToDomain() *domain.Staff {
	return &domain.Staff{Name: r.Name, Role: r.Role, CommissionRate: r.CommissionRate}
}

// CreateAccountRequest HTTP request model
type CreateAccountRequest struct {
	Name           string             `json:"name" validate:"required,max=100"`
	Type           domain.AccountType `json:"type" validate:"required,oneof=BANK CASH E_WALLET"`
	OpeningBalance int64              `json:"openingBalance"`
}

func (r *CreateAccountRequest) ToDomain() *domain.Account {
	return &domain.Account{Name: r.Name, Type: r.Type, Balance: r.OpeningBalance}
}

// CreateAutomationRuleRequest HTTP request model
type CreateAutomationRuleRequest struct {
	Name             string     `json:"name" validate:"required,max=100"`
	TriggerStatus    string     `json:"triggerStatus" validate:"required"`
	TriggerPackageID *uuid.UUID `json:"triggerPackageId,omitempty"`
	TaskTemplates    []string   `json:"taskTemplates" validate:"omitempty,dive,required"`
	AssigneeID       *uuid.UUID `json:"assigneeId,omitempty"`
}

func (r *CreateAutomationRuleRequest) ToDomain() (*domain.AutomationRule, error) {
	status, err := domain.ParseBookingStatus(r.TriggerStatus)
	if err != nil {
		return nil, err
	}
	return &domain.AutomationRule{
		Name:             r.Name,
		TriggerStatus:    status,
		TriggerPackageID: r.TriggerPackageID,
		TaskTemplates:    r.TaskTemplates,
		AssigneeID:       r.AssigneeID,
	}, nil
}

// ListResponse ответ со списком сущностей коллекции
type ListResponse struct {
	Collection string      `json:"collection"`
	Items      interface{} `json:"items"`
}
