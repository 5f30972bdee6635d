package account

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrAccountNotFound возвращается, когда счет не найден
	ErrAccountNotFound = fmt.Errorf("account.repository: %w", domain.ErrNotFound)

	// ErrVersionConflict возвращается, если счет изменили параллельно
	ErrVersionConflict = fmt.Errorf("account.repository: %w", domain.ErrVersionConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("account.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("account.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("account.repository: failed to scan row")
)
