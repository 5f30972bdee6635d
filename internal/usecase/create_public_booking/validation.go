package create_public_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// validateRequest валидирует входные данные заявки
func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: clientName must not exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	// "Имя <addr>" допустим, но клиент хранится и ищется только по адресу
	addr, err := mail.ParseAddress(req.ClientEmail)
	if err != nil {
		return fmt.Errorf("%w: invalid clientEmail: %v", ErrInvalidInput, err)
	}
	req.ClientEmail = addr.Address

	if req.PackageID == uuid.Nil {
		return fmt.Errorf("%w: packageID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// withinOperatingHours проверяет, что сессия начинается не раньше открытия и заканчивается не позже закрытия
func withinOperatingHours(start types.TimeString, durationHours int, cfg domain.ResolvedConfig) bool {
	begin := start.Minutes()
	end := begin + durationHours*60
	return begin >= cfg.OpenTime.Minutes() && end <= cfg.CloseTime.Minutes()
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
