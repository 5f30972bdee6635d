package get_tax_report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	getTaxReport "github.com/m04kA/SMC-StudioService/internal/usecase/get_tax_report"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getTaxReport.Request) (*ledger.TaxReport, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*ledger.TaxReport)
	return resp, args.Error(1)
}

func TestHandler_Normal(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *getTaxReport.Request) bool {
		return r.Mode != nil && *r.Mode == "NORMAL" && r.TaxRate != nil && r.TaxRate.Equal(decimal.NewFromInt(11))
	})).Return(&ledger.TaxReport{
		Mode:    domain.TaxModeNormal,
		TaxRate: decimal.NewFromInt(11),
		Rows: []ledger.TaxRow{{
			TransactionID: uuid.New(), Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			Gross: 111000, DPP: 100000, PPN: 11000,
		}},
		TotalGross: 111000, TotalDPP: 100000, TotalPPN: 11000,
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/reports/tax?from=2025-03-01&to=2025-03-31&mode=NORMAL&taxRate=11", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaxReportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, resp.TotalGross, resp.TotalDPP+resp.TotalPPN)
	assert.Equal(t, "2025-03-14", resp.Rows[0].Date)
}

func TestHandler_BadRequests(t *testing.T) {
	for _, target := range []string{
		"/api/v1/reports/tax",
		"/api/v1/reports/tax?from=2025-03-01",
		"/api/v1/reports/tax?from=01.03.2025&to=2025-03-31",
		"/api/v1/reports/tax?from=2025-03-01&to=2025-03-31&taxRate=eleven",
	} {
		rec := httptest.NewRecorder()
		NewHandler(&mockUseCase{}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
