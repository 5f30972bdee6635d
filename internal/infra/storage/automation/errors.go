package automation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrRuleNotFound возвращается, когда правило автоматизации не найдено
	ErrRuleNotFound = fmt.Errorf("automation.repository: %w", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("automation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("automation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("automation.repository: failed to scan row")
)
