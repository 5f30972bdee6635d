package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// umkmFinalRate ставка PPh Final для УМКМ (0.5%)
var umkmFinalRate = decimal.New(domain.UMKMFinalTaxPerMille, -3)

// TaxRow строка налогового отчета по одной доходной проводке
type TaxRow struct {
	TransactionID uuid.UUID
	Date          time.Time
	Description   string
	Gross         int64
	PPhFinal      int64 // UMKM
	DPP           int64 // NORMAL: налоговая база
	PPN           int64 // NORMAL: налог, включенный в сумму
}

// TaxReport налоговый отчет за период
type TaxReport struct {
	Mode          domain.TaxMode
	TaxRate       decimal.Decimal
	Rows          []TaxRow
	TotalGross    int64
	TotalPPhFinal int64
	TotalDPP      int64
	TotalPPN      int64
}

// BuildTaxReport строит отчет по доходным проводкам в одном из двух режимов
// UMKM: pphFinal = round(gross * 0.005).
// NORMAL: dpp = round(gross / (1 + rate/100)), ppn = gross - dpp, поэтому dpp + ppn == gross.
func BuildTaxReport(transactions []*domain.Transaction, mode domain.TaxMode, taxRate decimal.Decimal) (*TaxReport, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown tax mode %q", domain.ErrValidation, mode)
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax rate must not be negative", domain.ErrValidation)
	}

	report := &TaxReport{
		Mode:    mode,
		TaxRate: taxRate,
		Rows:    make([]TaxRow, 0, len(transactions)),
	}

	divisor := decimal.NewFromInt(1).Add(taxRate.Div(hundred))

	for _, txn := range transactions {
		if txn == nil || txn.Type != domain.TransactionIncome {
			continue
		}

		row := TaxRow{
			TransactionID: txn.ID,
			Date:          txn.Date,
			Description:   txn.Description,
			Gross:         txn.Amount,
		}

		switch mode {
		case domain.TaxModeUMKM:
			row.PPhFinal = roundMinor(decimal.NewFromInt(txn.Amount).Mul(umkmFinalRate))
		case domain.TaxModeNormal:
			row.DPP = roundMinor(decimal.NewFromInt(txn.Amount).Div(divisor))
			row.PPN = txn.Amount - row.DPP
		}

		report.Rows = append(report.Rows, row)
		report.TotalGross += row.Gross
		report.TotalPPhFinal += row.PPhFinal
		report.TotalDPP += row.DPP
		report.TotalPPN += row.PPN
	}

	return report, nil
}
