package get_tax_report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// TaxRowResponse строка отчета
type TaxRowResponse struct {
	TransactionID uuid.UUID `json:"transactionId"`
	Date          string    `json:"date"`
	Description   string    `json:"description"`
	Gross         int64     `json:"gross"`
	PPhFinal      int64     `json:"pphFinal,omitempty"`
	DPP           int64     `json:"dpp,omitempty"`
	PPN           int64     `json:"ppn,omitempty"`
}

// TaxReportResponse HTTP response model
type TaxReportResponse struct {
	From          string           `json:"from"`
	To            string           `json:"to"`
	Mode          domain.TaxMode   `json:"mode"`
	TaxRate       decimal.Decimal  `json:"taxRate"`
	Rows          []TaxRowResponse `json:"rows"`
	TotalGross    int64            `json:"totalGross"`
	TotalPPhFinal int64            `json:"totalPphFinal"`
	TotalDPP      int64            `json:"totalDpp"`
	TotalPPN      int64            `json:"totalPpn"`
}

// FromReport конвертирует отчет в HTTP response
func FromReport(from, to string, r *ledger.TaxReport) *TaxReportResponse {
	rows := make([]TaxRowResponse, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, TaxRowResponse{
			TransactionID: row.TransactionID,
			Date:          row.Date.Format(domain.DateFormat),
			Description:   row.Description,
			Gross:         row.Gross,
			PPhFinal:      row.PPhFinal,
			DPP:           row.DPP,
			PPN:           row.PPN,
		})
	}

	return &TaxReportResponse{
		From:          from,
		To:            to,
		Mode:          r.Mode,
		TaxRate:       r.TaxRate,
		Rows:          rows,
		TotalGross:    r.TotalGross,
		TotalPPhFinal: r.TotalPPhFinal,
		TotalDPP:      r.TotalDPP,
		TotalPPN:      r.TotalPPN,
	}
}
