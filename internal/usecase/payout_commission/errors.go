package payout_commission

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrAccountNotFound возвращается, когда счет не найден
	ErrAccountNotFound = fmt.Errorf("payout_commission: account %w", domain.ErrNotFound)

	// ErrVersionConflict возвращается, если счет изменили параллельно
	ErrVersionConflict = fmt.Errorf("payout_commission: %w", domain.ErrVersionConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("payout_commission: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("payout_commission: %w", domain.ErrPersistence)
)
