package change_booking_status

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("change_booking_status: booking %w", domain.ErrNotFound)

	// ErrVersionConflict возвращается, если бронь изменили параллельно
	ErrVersionConflict = fmt.Errorf("change_booking_status: %w", domain.ErrVersionConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("change_booking_status: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("change_booking_status: %w", domain.ErrPersistence)
)
