package get_booking_invoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	getBookingInvoice "github.com/m04kA/SMC-StudioService/internal/usecase/get_booking_invoice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getBookingInvoice.Request) (*getBookingInvoice.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getBookingInvoice.Response)
	return resp, args.Error(1)
}

func serve(h *Handler, bookingID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/invoice", h.Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID+"/invoice", nil))
	return rec
}

func TestHandler_Invoice(t *testing.T) {
	bookingID := uuid.New()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getBookingInvoice.Request{BookingID: bookingID}).Return(&getBookingInvoice.Response{
		Booking: &domain.Booking{
			ID: bookingID, Date: day, StartTime: "10:00", DurationHours: 2,
			Status: domain.StatusBooked, Price: 1000000, PaidAmount: 1109000,
		},
		Totals: ledger.Totals{
			Subtotal: 1000000, AfterDiscount: 1000000,
			TaxRate: decimal.RequireFromString("0.11"), TaxRateSource: ledger.TaxRateFromSnapshot,
			TaxAmount: 110000, GrandTotal: 1110000, PaidAmount: 1109000, DueAmount: 1000,
		},
		Settled:   true,
		Tolerance: 1000,
		Transactions: []*domain.Transaction{{
			ID: uuid.New(), Type: domain.TransactionIncome, Amount: 1109000, BookingID: &bookingID,
			Date: day, Status: domain.TransactionCompleted,
		}},
	}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), bookingID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp InvoiceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1110000), resp.Totals.GrandTotal)
	assert.Equal(t, int64(1000), resp.Totals.DueAmount)
	assert.True(t, resp.Totals.TaxRate.Equal(decimal.RequireFromString("0.11")))
	assert.Equal(t, ledger.TaxRateFromSnapshot, resp.Totals.TaxRateSource)
	assert.True(t, resp.Settled)
	assert.Equal(t, int64(1000), resp.Tolerance)
	require.Len(t, resp.Transactions, 1)
	assert.Equal(t, domain.TransactionIncome, resp.Transactions[0].Type)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, bookingID, resp.Booking.ID)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		ucErr error
		want  int
	}{
		{name: "bad id", id: "invoice", want: http.StatusBadRequest},
		{name: "not found", id: uuid.NewString(), ucErr: getBookingInvoice.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "internal", id: uuid.NewString(), ucErr: getBookingInvoice.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}
			rec := serve(NewHandler(uc, nopLogger{}), tt.id)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
