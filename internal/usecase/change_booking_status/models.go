package change_booking_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/workflow"
)

// Request модель запроса на смену статуса
type Request struct {
	Actor           uuid.UUID
	BookingID       uuid.UUID
	Status          string // регистр не важен
	ExpectedVersion *int
}

// Response модель ответа
type Response struct {
	Booking    *domain.Booking
	Automation workflow.Result
}
