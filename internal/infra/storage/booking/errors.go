package booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("booking.repository: %w", domain.ErrNotFound)

	// ErrVersionConflict возвращается, если бронирование изменили параллельно
	ErrVersionConflict = fmt.Errorf("booking.repository: %w", domain.ErrVersionConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncode возвращается при ошибке сериализации JSONB полей
	ErrEncode = errors.New("booking.repository: failed to encode document")
)
