package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// BookingStatus represents the workflow status of a booking
type BookingStatus string

const (
	StatusInquiry   BookingStatus = "INQUIRY"
	StatusBooked    BookingStatus = "BOOKED"
	StatusShooting  BookingStatus = "SHOOTING"
	StatusCulling   BookingStatus = "CULLING"
	StatusEditing   BookingStatus = "EDITING"
	StatusReview    BookingStatus = "REVIEW"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// DiscountType тип скидки
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

// Booking represents a studio session booking
type Booking struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	ClientName  string
	PackageID   *uuid.UUID // nil для быстрой брони без пакета
	PackageName string
	RoomID      uuid.UUID

	Date          time.Time // календарный день (полночь UTC)
	StartTime     types.TimeString
	DurationHours int
	Status        BookingStatus

	// Финансы (минорные единицы валюты)
	Price      int64 // базовая цена до скидки и налога
	LineItems  []LineItem
	Discount   *Discount
	PaidAmount int64 // меняется только через проведение платежа/возврата

	// Неизменяемые снимки, фиксируются при создании
	TaxRateSnapshot *decimal.Decimal
	CostSnapshot    []CostItem

	PrimaryStaffID   *uuid.UUID
	SecondaryStaffID *uuid.UUID // редактор

	Tasks       []Task
	ActivityLog []ActivityEntry
	Notes       *string

	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItem позиция счета
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	Cost        int64  `json:"cost"` // себестоимость всей позиции
}

// Total возвращает сумму позиции
func (i LineItem) Total() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// Discount скидка на бронирование
type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// CostItem статья себестоимости (COGS)
type CostItem struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Task задача по бронированию
type Task struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActivityEntry запись журнала изменений бронирования
type ActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	Actor     uuid.UUID `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// StartMinutes возвращает начало брони в минутах от полуночи
func (b *Booking) StartMinutes() int {
	return b.StartTime.Minutes()
}

// EndMinutes возвращает конец брони в минутах от полуночи
func (b *Booking) EndMinutes() int {
	return b.StartTime.Minutes() + b.DurationHours*60
}

// IsCancelled returns true if the booking was cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsCompleted returns true if the booking is completed
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted
}

// IsTerminal returns true for COMPLETED and CANCELLED bookings
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// InvolvesStaff returns true if the staff member is the primary or secondary assignee
func (b *Booking) InvolvesStaff(staffID uuid.UUID) bool {
	return (b.PrimaryStaffID != nil && *b.PrimaryStaffID == staffID) ||
		(b.SecondaryStaffID != nil && *b.SecondaryStaffID == staffID)
}

// Clone возвращает глубокую копию бронирования
// Движки никогда не изменяют входные снимки, работают с копией
func (b *Booking) Clone() *Booking {
	c := *b
	c.LineItems = append([]LineItem(nil), b.LineItems...)
	c.CostSnapshot = append([]CostItem(nil), b.CostSnapshot...)
	c.Tasks = append([]Task(nil), b.Tasks...)
	c.ActivityLog = append([]ActivityEntry(nil), b.ActivityLog...)
	if b.Discount != nil {
		d := *b.Discount
		c.Discount = &d
	}
	if b.TaxRateSnapshot != nil {
		r := *b.TaxRateSnapshot
		c.TaxRateSnapshot = &r
	}
	if b.PackageID != nil {
		id := *b.PackageID
		c.PackageID = &id
	}
	if b.PrimaryStaffID != nil {
		id := *b.PrimaryStaffID
		c.PrimaryStaffID = &id
	}
	if b.SecondaryStaffID != nil {
		id := *b.SecondaryStaffID
		c.SecondaryStaffID = &id
	}
	if b.Notes != nil {
		n := *b.Notes
		c.Notes = &n
	}
	return &c
}

// AppendActivity добавляет запись в журнал
func (b *Booking) AppendActivity(actor uuid.UUID, action, details string, at time.Time) {
	b.ActivityLog = append(b.ActivityLog, ActivityEntry{
		ID:        uuid.New(),
		Actor:     actor,
		Action:    action,
		Details:   details,
		Timestamp: at,
	})
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	StartDate        *time.Time      // начало периода (включительно)
	EndDate          *time.Time      // конец периода (включительно)
	RoomID           *uuid.UUID      // фильтр по залу
	ClientID         *uuid.UUID      // фильтр по клиенту
	PackageID        *uuid.UUID      // фильтр по пакету
	StaffID          *uuid.UUID      // основной или дополнительный сотрудник
	Statuses         []BookingStatus // пусто - любые статусы (с учетом IncludeCancelled)
	IncludeCancelled bool
	OnlyLive         bool // только нетерминальные (для проверок целостности)
}

// IsSingleDay возвращает true, если фильтр задает ровно один день
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
