package catalog

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных данных справочника
	ErrInvalidInput = fmt.Errorf("catalog: %w", domain.ErrValidation)

	// ErrUnknownEntity возвращается для неизвестной коллекции
	ErrUnknownEntity = fmt.Errorf("catalog: unknown collection: %w", domain.ErrNotFound)

	// ErrEmailTaken возвращается, если клиент с таким email уже есть
	ErrEmailTaken = fmt.Errorf("catalog: client email already registered: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("catalog: %w", domain.ErrPersistence)
)

// isNotFound ошибки репозиториев "не найдено" оборачивают domain.ErrNotFound
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
