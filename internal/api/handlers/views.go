package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// Общие JSON представления сущностей, которые отдают несколько handlers

// RoomView зал
type RoomView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PackageView пакет услуг
type PackageView struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	DurationHours int               `json:"durationHours"`
	BasePrice     int64             `json:"basePrice"`
	Features      []string          `json:"features"`
	CostBreakdown []domain.CostItem `json:"costBreakdown"`
	Archived      bool              `json:"archived"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// ClientView клиент
type ClientView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// StaffView сотрудник
type StaffView struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Role           domain.StaffRole `json:"role"`
	CommissionRate decimal.Decimal  `json:"commissionRate"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// AutomationRuleView правило автоматизации
type AutomationRuleView struct {
	ID               uuid.UUID            `json:"id"`
	Name             string               `json:"name"`
	TriggerStatus    domain.BookingStatus `json:"triggerStatus"`
	TriggerPackageID *uuid.UUID           `json:"triggerPackageId,omitempty"`
	TaskTemplates    []string             `json:"taskTemplates"`
	AssigneeID       *uuid.UUID           `json:"assigneeId,omitempty"`
	Position         int                  `json:"position"`
}

// AccountView счет
type AccountView struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Type      domain.AccountType `json:"type"`
	Balance   int64              `json:"balance"`
	Version   int                `json:"version"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// TransactionView проводка
type TransactionView struct {
	ID          uuid.UUID                `json:"id"`
	Type        domain.TransactionType   `json:"type"`
	Category    string                   `json:"category"`
	Amount      int64                    `json:"amount"`
	AccountID   uuid.UUID                `json:"accountId"`
	ToAccountID *uuid.UUID               `json:"toAccountId,omitempty"`
	BookingID   *uuid.UUID               `json:"bookingId,omitempty"`
	StaffID     *uuid.UUID               `json:"staffId,omitempty"`
	Description string                   `json:"description"`
	Date        time.Time                `json:"date"`
	Status      domain.TransactionStatus `json:"status"`
	CreatedBy   uuid.UUID                `json:"createdBy"`
}

// TotalsView итоги счета по бронированию
type TotalsView struct {
	Subtotal       int64                `json:"subtotal"`
	DiscountAmount int64                `json:"discountAmount"`
	AfterDiscount  int64                `json:"afterDiscount"`
	TaxRate        decimal.Decimal      `json:"taxRate"`
	TaxRateSource  ledger.TaxRateSource `json:"taxRateSource"`
	TaxAmount      int64                `json:"taxAmount"`
	GrandTotal     int64                `json:"grandTotal"`
	PaidAmount     int64                `json:"paidAmount"`
	DueAmount      int64                `json:"dueAmount"`
}

// CommissionLineView строка расчета комиссии
type CommissionLineView struct {
	BookingID   uuid.UUID `json:"bookingId"`
	Date        string    `json:"date"`
	ClientName  string    `json:"clientName"`
	Price       int64     `json:"price"`
	Discount    int64     `json:"discount"`
	CostOfGoods int64     `json:"costOfGoods"`
	NetSales    int64     `json:"netSales"`
}

// CommissionView расчет комиссии сотрудника
type CommissionView struct {
	StaffID         uuid.UUID            `json:"staffId"`
	StaffName       string               `json:"staffName"`
	Rate            decimal.Decimal      `json:"rate"`
	Lines           []CommissionLineView `json:"lines"`
	TotalNetSales   int64                `json:"totalNetSales"`
	TotalCommission int64                `json:"totalCommission"`
}

func NewRoomView(r *domain.Room) RoomView {
	return RoomView{ID: r.ID, Name: r.Name, Description: r.Description, Archived: r.Archived, CreatedAt: r.CreatedAt}
}

func NewPackageView(p *domain.Package) PackageView {
	return PackageView{
		ID:            p.ID,
		Name:          p.Name,
		DurationHours: p.DurationHours,
		BasePrice:     p.BasePrice,
		Features:      nonNil(p.Features),
		CostBreakdown: nonNil(p.CostBreakdown),
		Archived:      p.Archived,
		CreatedAt:     p.CreatedAt,
	}
}

func NewClientView(c *domain.Client) ClientView {
	return ClientView{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, CreatedAt: c.CreatedAt}
}

func NewStaffView(s *domain.Staff) StaffView {
	return StaffView{ID: s.ID, Name: s.Name, Role: s.Role, CommissionRate: s.CommissionRate, CreatedAt: s.CreatedAt}
}

func NewAutomationRuleView(r domain.AutomationRule) AutomationRuleView {
	return AutomationRuleView{
		ID:               r.ID,
		Name:             r.Name,
		TriggerStatus:    r.TriggerStatus,
		TriggerPackageID: r.TriggerPackageID,
		TaskTemplates:    nonNil(r.TaskTemplates),
		AssigneeID:       r.AssigneeID,
		Position:         r.Position,
	}
}

// NewAccountView nil-safe: для nil возвращает nil
func NewAccountView(a *domain.Account) *AccountView {
	if a == nil {
		return nil
	}
	return &AccountView{ID: a.ID, Name: a.Name, Type: a.Type, Balance: a.Balance, Version: a.Version, UpdatedAt: a.UpdatedAt}
}

// NewTransactionView nil-safe: для nil возвращает nil
func NewTransactionView(t *domain.Transaction) *TransactionView {
	if t == nil {
		return nil
	}
	return &TransactionView{
		ID:          t.ID,
		Type:        t.Type,
		Category:    t.Category,
		Amount:      t.Amount,
		AccountID:   t.AccountID,
		ToAccountID: t.ToAccountID,
		BookingID:   t.BookingID,
		StaffID:     t.StaffID,
		Description: t.Description,
		Date:        t.Date,
		Status:      t.Status,
		CreatedBy:   t.CreatedBy,
	}
}

func NewTransactionViews(txns []*domain.Transaction) []TransactionView {
	result := make([]TransactionView, 0, len(txns))
	for _, t := range txns {
		if t == nil {
			continue
		}
		result = append(result, *NewTransactionView(t))
	}
	return result
}

func NewTotalsView(t ledger.Totals) TotalsView {
	return TotalsView{
		Subtotal:       t.Subtotal,
		DiscountAmount: t.DiscountAmount,
		AfterDiscount:  t.AfterDiscount,
		TaxRate:        t.TaxRate,
		TaxRateSource:  t.TaxRateSource,
		TaxAmount:      t.TaxAmount,
		GrandTotal:     t.GrandTotal,
		PaidAmount:     t.PaidAmount,
		DueAmount:      t.DueAmount,
	}
}

// NewCommissionView nil-safe: для nil возвращает nil
func NewCommissionView(r *ledger.CommissionReport) *CommissionView {
	if r == nil {
		return nil
	}

	lines := make([]CommissionLineView, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, CommissionLineView{
			BookingID:   l.BookingID,
			Date:        l.Date.Format(domain.DateFormat),
			ClientName:  l.ClientName,
			Price:       l.Price,
			Discount:    l.Discount,
			CostOfGoods: l.CostOfGoods,
			NetSales:    l.NetSales,
		})
	}

	return &CommissionView{
		StaffID:         r.StaffID,
		StaffName:       r.StaffName,
		Rate:            r.Rate,
		Lines:           lines,
		TotalNetSales:   r.TotalNetSales,
		TotalCommission: r.TotalCommission,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
