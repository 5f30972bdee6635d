package studioconfig

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда зал для переопределения не найден
	ErrRoomNotFound = fmt.Errorf("studioconfig: room %w", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("studioconfig: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("studioconfig: %w", domain.ErrPersistence)
)
