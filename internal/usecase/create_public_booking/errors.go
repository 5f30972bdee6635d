package create_public_booking

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrPackageNotFound возвращается, когда пакет не найден или в архиве
	ErrPackageNotFound = fmt.Errorf("create_public_booking: package %w", domain.ErrNotFound)

	// ErrInvalidDate возвращается, когда дата в прошлом
	ErrInvalidDate = fmt.Errorf("create_public_booking: date is in the past: %w", domain.ErrValidation)

	// ErrOutsideOperatingHours возвращается, когда сессия выходит за часы работы
	ErrOutsideOperatingHours = fmt.Errorf("create_public_booking: outside operating hours: %w", domain.ErrValidation)

	// ErrSlotNotAvailable возвращается, когда все залы заняты в выбранное время
	ErrSlotNotAvailable = fmt.Errorf("create_public_booking: slot is not available: %w", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_public_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_public_booking: %w", domain.ErrPersistence)
)
