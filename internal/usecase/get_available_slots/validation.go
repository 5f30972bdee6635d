package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/availability"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID == uuid.Nil {
		return fmt.Errorf("%w: roomID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationHours < domain.MinDurationHours || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: durationHours must be within %d..%d",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}

	switch req.Audience {
	case domain.AudiencePublic, domain.AudienceInternal:
	default:
		return fmt.Errorf("%w: unknown audience %q", ErrInvalidInput, req.Audience)
	}

	return nil
}

// closePastSlots помечает занятыми слоты сегодняшнего дня, которые уже начались
func closePastSlots(slots []availability.Slot, date, now time.Time) {
	if !isSameDay(date, now) {
		return
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	for i := range slots {
		if slots[i].StartTime.Minutes() <= nowMinutes {
			slots[i].Available = false
		}
	}
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
