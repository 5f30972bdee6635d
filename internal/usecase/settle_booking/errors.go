package settle_booking

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("settle_booking: booking %w", domain.ErrNotFound)

	// ErrAccountNotFound возвращается, когда счет не найден
	ErrAccountNotFound = fmt.Errorf("settle_booking: account %w", domain.ErrNotFound)

	// ErrVersionConflict возвращается, если бронь или счет изменили параллельно
	ErrVersionConflict = fmt.Errorf("settle_booking: %w", domain.ErrVersionConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("settle_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("settle_booking: %w", domain.ErrPersistence)
)
