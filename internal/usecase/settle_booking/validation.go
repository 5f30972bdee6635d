package settle_booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// validateRequest валидирует входные данные и разбирает режим
func validateRequest(req *Request) (domain.SettlementMode, error) {
	if req.Actor == uuid.Nil {
		return "", fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return "", fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	if req.AccountID == uuid.Nil {
		return "", fmt.Errorf("%w: accountID is required", ErrInvalidInput)
	}

	if req.Amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	mode := domain.SettlementMode(strings.ToUpper(strings.TrimSpace(req.Mode)))
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidInput, req.Mode)
	}

	return mode, nil
}
