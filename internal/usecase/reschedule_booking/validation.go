package reschedule_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/allocator"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor == uuid.Nil {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	if toPatch(req).IsEmpty() {
		return fmt.Errorf("%w: at least one of date, startTime, durationHours, roomId is required", ErrInvalidInput)
	}

	if req.DurationHours != nil && *req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: durationHours must not exceed %d", ErrInvalidInput, domain.MaxDurationHours)
	}

	if req.RoomID != nil && *req.RoomID == uuid.Nil {
		return fmt.Errorf("%w: roomId must not be empty", ErrInvalidInput)
	}

	return nil
}

func toPatch(req *Request) allocator.Patch {
	return allocator.Patch{
		Date:          req.Date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		RoomID:        req.RoomID,
	}
}
