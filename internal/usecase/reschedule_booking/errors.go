package reschedule_booking

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("reschedule_booking: booking %w", domain.ErrNotFound)

	// ErrRoomNotFound возвращается, когда новый зал не найден или в архиве
	ErrRoomNotFound = fmt.Errorf("reschedule_booking: room %w", domain.ErrNotFound)

	// ErrBookingCancelled возвращается при попытке перенести отмененную бронь
	ErrBookingCancelled = fmt.Errorf("reschedule_booking: booking is cancelled: %w", domain.ErrValidation)

	// ErrVersionConflict возвращается, если бронь изменили параллельно
	ErrVersionConflict = fmt.Errorf("reschedule_booking: %w", domain.ErrVersionConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("reschedule_booking: %w", domain.ErrPersistence)
)
