package get_tax_report

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	getTaxReport "github.com/m04kA/SMC-StudioService/internal/usecase/get_tax_report"
)

type GetTaxReportUseCase interface {
	Execute(ctx context.Context, req *getTaxReport.Request) (*ledger.TaxReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
