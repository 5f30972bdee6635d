package create_booking

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Бизнес-правила черновика проверяет allocator.Create
func validateRequest(req *Request) error {
	if req.Actor == uuid.Nil {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.ClientID == uuid.Nil {
		return fmt.Errorf("%w: clientID is required", ErrInvalidInput)
	}

	if req.RoomID == uuid.Nil {
		return fmt.Errorf("%w: roomID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationHours != nil && *req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: durationHours must not exceed %d", ErrInvalidInput, domain.MaxDurationHours)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// staffIDs возвращает назначенных сотрудников без повторов
func staffIDs(req *Request) []uuid.UUID {
	ids := make([]uuid.UUID, 0, 2)
	if req.PrimaryStaffID != nil {
		ids = append(ids, *req.PrimaryStaffID)
	}
	if req.SecondaryStaffID != nil && (req.PrimaryStaffID == nil || *req.SecondaryStaffID != *req.PrimaryStaffID) {
		ids = append(ids, *req.SecondaryStaffID)
	}
	return ids
}
