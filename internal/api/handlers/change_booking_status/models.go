package change_booking_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
	changeBookingStatus "github.com/m04kA/SMC-StudioService/internal/usecase/change_booking_status"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status          string `json:"status" validate:"required"`
	ExpectedVersion *int   `json:"expectedVersion,omitempty" validate:"omitempty,min=1"`
}

// AutomationResponse что сделала автоматизация при переходе
type AutomationResponse struct {
	PreviousStatus domain.BookingStatus `json:"previousStatus"`
	Fired          bool                 `json:"fired"`
	RuleID         *uuid.UUID           `json:"ruleId,omitempty"`
	AddedTasks     []domain.Task        `json:"addedTasks"`
	AssignedEditor *uuid.UUID           `json:"assignedEditor,omitempty"`
}

// ChangeStatusResponse HTTP response model
type ChangeStatusResponse struct {
	Booking    *models.BookingResponse `json:"booking"`
	Automation AutomationResponse      `json:"automation"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *changeBookingStatus.Response) *ChangeStatusResponse {
	tasks := resp.Automation.AddedTasks
	if tasks == nil {
		tasks = []domain.Task{}
	}

	return &ChangeStatusResponse{
		Booking: models.FromDomainBooking(resp.Booking),
		Automation: AutomationResponse{
			PreviousStatus: resp.Automation.PreviousStatus,
			Fired:          resp.Automation.AutomationFired,
			RuleID:         resp.Automation.RuleID,
			AddedTasks:     tasks,
			AssignedEditor: resp.Automation.AssignedEditor,
		},
	}
}
