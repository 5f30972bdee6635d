package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrRoomNotFound возвращается, когда зал не найден
	ErrRoomNotFound = fmt.Errorf("create_booking: room %w", domain.ErrNotFound)

	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = fmt.Errorf("create_booking: package %w", domain.ErrNotFound)

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = fmt.Errorf("create_booking: client %w", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда назначенный сотрудник не найден
	ErrStaffNotFound = fmt.Errorf("create_booking: staff %w", domain.ErrNotFound)

	// ErrRoomArchived возвращается при попытке забронировать архивный зал
	ErrRoomArchived = fmt.Errorf("create_booking: room is archived: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_booking: %w", domain.ErrPersistence)
)
