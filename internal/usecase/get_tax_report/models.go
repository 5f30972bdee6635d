package get_tax_report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request модель запроса налогового отчета
// From и To - календарные дни, оба включительно
type Request struct {
	From    time.Time
	To      time.Time
	Mode    *string          // nil - режим из конфигурации студии
	TaxRate *decimal.Decimal // nil - ставка из конфигурации студии (для NORMAL)
}
