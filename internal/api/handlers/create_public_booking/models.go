package create_public_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	createPublicBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_public_booking"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// PublicBookingRequest заявка с виджета сайта
type PublicBookingRequest struct {
	ClientName  string    `json:"clientName" validate:"required,max=200"`
	ClientEmail string    `json:"clientEmail" validate:"required,email"`
	ClientPhone string    `json:"clientPhone" validate:"required,max=32"`
	Date        string    `json:"date" validate:"required"`
	Time        string    `json:"time" validate:"required"`
	PackageID   uuid.UUID `json:"packageId" validate:"required"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// PublicBookingResponse подтверждение заявки
// Клиенту не отдаются финансы и внутренние поля брони
type PublicBookingResponse struct {
	BookingID     uuid.UUID `json:"bookingId"`
	Status        string    `json:"status"`
	RoomName      string    `json:"roomName"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	DurationHours int       `json:"durationHours"`
	PackageName   string    `json:"packageName"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PublicBookingRequest) ToUseCaseRequest() (*createPublicBooking.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("time: %w", err)
	}

	return &createPublicBooking.Request{
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Date:        date,
		StartTime:   startTime,
		PackageID:   r.PackageID,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPublicBooking.Response) *PublicBookingResponse {
	b := resp.Booking
	return &PublicBookingResponse{
		BookingID:     b.ID,
		Status:        string(b.Status),
		RoomName:      resp.RoomName,
		Date:          b.Date.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		DurationHours: b.DurationHours,
		PackageName:   b.PackageName,
	}
}
