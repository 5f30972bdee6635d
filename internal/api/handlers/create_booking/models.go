package create_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientID         uuid.UUID         `json:"clientId" validate:"required"`
	PackageID        *uuid.UUID        `json:"packageId,omitempty"`
	RoomID           uuid.UUID         `json:"roomId" validate:"required"`
	Date             string            `json:"date" validate:"required"`      // "2025-03-14"
	StartTime        string            `json:"startTime" validate:"required"` // "10:00"
	DurationHours    *int              `json:"durationHours,omitempty" validate:"omitempty,min=1,max=24"`
	Price            *int64            `json:"price,omitempty" validate:"omitempty,min=0"`
	Status           string            `json:"status,omitempty"`
	LineItems        []domain.LineItem `json:"lineItems,omitempty"`
	Discount         *domain.Discount  `json:"discount,omitempty"`
	PrimaryStaffID   *uuid.UUID        `json:"primaryStaffId,omitempty"`
	SecondaryStaffID *uuid.UUID        `json:"secondaryStaffId,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	Force            bool              `json:"force"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking             *models.BookingResponse `json:"booking"`
	Totals              handlers.TotalsView     `json:"totals"`
	OverriddenConflicts []uuid.UUID             `json:"overriddenConflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor uuid.UUID) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	var status domain.BookingStatus
	if strings.TrimSpace(r.Status) != "" {
		status, err = domain.ParseBookingStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("status: %w", err)
		}
	}

	return &createBooking.Request{
		Actor:            actor,
		ClientID:         r.ClientID,
		PackageID:        r.PackageID,
		RoomID:           r.RoomID,
		Date:             date,
		StartTime:        startTime,
		DurationHours:    r.DurationHours,
		Price:            r.Price,
		Status:           status,
		LineItems:        r.LineItems,
		Discount:         r.Discount,
		PrimaryStaffID:   r.PrimaryStaffID,
		SecondaryStaffID: r.SecondaryStaffID,
		Notes:            r.Notes,
		Force:            r.Force,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	overridden := resp.OverriddenConflicts
	if overridden == nil {
		overridden = []uuid.UUID{}
	}

	return &CreateBookingResponse{
		Booking:             models.FromDomainBooking(resp.Booking),
		Totals:              handlers.NewTotalsView(resp.Totals),
		OverriddenConflicts: overridden,
	}
}
