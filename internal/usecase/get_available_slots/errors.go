package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда зал не найден или в архиве
	ErrRoomNotFound = fmt.Errorf("get_available_slots: room %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("get_available_slots: %w", domain.ErrPersistence)
)
