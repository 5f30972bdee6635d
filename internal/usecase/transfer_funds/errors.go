package transfer_funds

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrAccountNotFound возвращается, когда один из счетов не найден
	ErrAccountNotFound = fmt.Errorf("transfer_funds: account %w", domain.ErrNotFound)

	// ErrVersionConflict возвращается, если счет изменили параллельно
	ErrVersionConflict = fmt.Errorf("transfer_funds: %w", domain.ErrVersionConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("transfer_funds: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("transfer_funds: %w", domain.ErrPersistence)
)
