package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Request модели

// ListBookingsRequest запрос на список бронирований
type ListBookingsRequest struct {
	StartDate        *time.Time
	EndDate          *time.Time
	RoomID           *uuid.UUID
	ClientID         *uuid.UUID
	StaffID          *uuid.UUID
	Status           *domain.BookingStatus
	IncludeCancelled bool
}

// ToDomainFilter конвертирует запрос в фильтр репозитория
func (r *ListBookingsRequest) ToDomainFilter() domain.BookingsFilter {
	filter := domain.BookingsFilter{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		RoomID:           r.RoomID,
		ClientID:         r.ClientID,
		StaffID:          r.StaffID,
		IncludeCancelled: r.IncludeCancelled,
	}
	if r.Status != nil {
		filter.Statuses = []domain.BookingStatus{*r.Status}
	}
	return filter
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               uuid.UUID              `json:"id"`
	ClientID         uuid.UUID              `json:"clientId"`
	ClientName       string                 `json:"clientName"`
	PackageID        *uuid.UUID             `json:"packageId,omitempty"`
	PackageName      string                 `json:"packageName,omitempty"`
	RoomID           uuid.UUID              `json:"roomId"`
	Date             string                 `json:"date"`
	StartTime        types.TimeString       `json:"startTime"`
	EndTime          types.TimeString       `json:"endTime"`
	DurationHours    int                    `json:"durationHours"`
	Status           domain.BookingStatus   `json:"status"`
	Price            int64                  `json:"price"`
	LineItems        []domain.LineItem      `json:"lineItems"`
	Discount         *domain.Discount       `json:"discount,omitempty"`
	PaidAmount       int64                  `json:"paidAmount"`
	TaxRateSnapshot  *decimal.Decimal       `json:"taxRateSnapshot,omitempty"`
	CostSnapshot     []domain.CostItem      `json:"costSnapshot"`
	PrimaryStaffID   *uuid.UUID             `json:"primaryStaffId,omitempty"`
	SecondaryStaffID *uuid.UUID             `json:"secondaryStaffId,omitempty"`
	Tasks            []domain.Task          `json:"tasks"`
	ActivityLog      []domain.ActivityEntry `json:"activityLog"`
	Notes            *string                `json:"notes,omitempty"`
	Version          int                    `json:"version"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	endTime, _ := types.NewTimeStringFromMinutes(b.EndMinutes())

	return &BookingResponse{
		ID:               b.ID,
		ClientID:         b.ClientID,
		ClientName:       b.ClientName,
		PackageID:        b.PackageID,
		PackageName:      b.PackageName,
		RoomID:           b.RoomID,
		Date:             b.Date.Format(domain.DateFormat),
		StartTime:        b.StartTime,
		EndTime:          endTime,
		DurationHours:    b.DurationHours,
		Status:           b.Status,
		Price:            b.Price,
		LineItems:        nonNil(b.LineItems),
		Discount:         b.Discount,
		PaidAmount:       b.PaidAmount,
		TaxRateSnapshot:  b.TaxRateSnapshot,
		CostSnapshot:     nonNil(b.CostSnapshot),
		PrimaryStaffID:   b.PrimaryStaffID,
		SecondaryStaffID: b.SecondaryStaffID,
		Tasks:            nonNil(b.Tasks),
		ActivityLog:      nonNil(b.ActivityLog),
		Notes:            b.Notes,
		Version:          b.Version,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		result.Bookings = append(result.Bookings, *FromDomainBooking(b))
	}
	return result
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
