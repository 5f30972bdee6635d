package change_booking_status

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// validateRequest валидирует входные данные и разбирает статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.Actor == uuid.Nil {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		return "", fmt.Errorf("change_booking_status: %w", err)
	}

	return status, nil
}
