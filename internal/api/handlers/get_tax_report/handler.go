package get_tax_report

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	getTaxReport "github.com/m04kA/SMC-StudioService/internal/usecase/get_tax_report"
)

const (
	msgMissingPeriod  = "параметры from и to обязательны"
	msgInvalidPeriod  = "некорректный период, ожидается YYYY-MM-DD"
	msgInvalidTaxRate = "некорректная ставка налога"
	msgInvalidReport  = "некорректные параметры отчета"
)

type Handler struct {
	useCase GetTaxReportUseCase
	logger  Logger
}

func NewHandler(useCase GetTaxReportUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/tax?from=&to=&mode=&taxRate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fromStr, toStr := query.Get("from"), query.Get("to")
	if fromStr == "" || toStr == "" {
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := handlers.ParseDate(fromStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.ParseDate(toStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	req := &getTaxReport.Request{From: from, To: to}

	if mode := strings.TrimSpace(query.Get("mode")); mode != "" {
		req.Mode = &mode
	}
	if raw := strings.TrimSpace(query.Get("taxRate")); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTaxRate)
			return
		}
		req.TaxRate = &rate
	}

	report, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /reports/tax - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReport)

		default:
			h.logger.Error("GET /reports/tax - Failed to build report: from=%s, to=%s, error=%v", fromStr, toStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reports/tax - Report built: from=%s, to=%s, mode=%s, rows=%d",
		fromStr, toStr, report.Mode, len(report.Rows))
	handlers.RespondJSON(w, http.StatusOK, FromReport(fromStr, toStr, report))
}
