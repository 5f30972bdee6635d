package reschedule_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-StudioService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// RescheduleRequest HTTP request model, переданные поля меняются
type RescheduleRequest struct {
	Date                   *string    `json:"date,omitempty"`
	StartTime              *string    `json:"startTime,omitempty"`
	DurationHours          *int       `json:"durationHours,omitempty" validate:"omitempty,min=1,max=24"`
	RoomID                 *uuid.UUID `json:"roomId,omitempty"`
	ExpectedVersion        *int       `json:"expectedVersion,omitempty" validate:"omitempty,min=1"`
	ForceWithoutValidation bool       `json:"forceWithoutValidation"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Booking             *models.BookingResponse `json:"booking"`
	OverriddenConflicts []uuid.UUID             `json:"overriddenConflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(actor, bookingID uuid.UUID) (*rescheduleBooking.Request, error) {
	req := &rescheduleBooking.Request{
		Actor:                  actor,
		BookingID:              bookingID,
		DurationHours:          r.DurationHours,
		RoomID:                 r.RoomID,
		ExpectedVersion:        r.ExpectedVersion,
		ForceWithoutValidation: r.ForceWithoutValidation,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("startTime: %w", err)
		}
		req.StartTime = &start
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleResponse {
	overridden := resp.OverriddenConflicts
	if overridden == nil {
		overridden = []uuid.UUID{}
	}
	return &RescheduleResponse{
		Booking:             models.FromDomainBooking(resp.Booking),
		OverriddenConflicts: overridden,
	}
}
