package get_booking_invoice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type staticConfig struct{ cfg domain.ResolvedConfig }

func (s staticConfig) GetResolved(context.Context, *uuid.UUID) (domain.ResolvedConfig, error) {
	return s.cfg, nil
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

type mockTransactions struct{ mock.Mock }

func (m *mockTransactions) List(ctx context.Context, filter domain.TransactionsFilter) ([]*domain.Transaction, error) {
	args := m.Called(ctx, filter)
	t, _ := args.Get(0).([]*domain.Transaction)
	return t, args.Error(1)
}

func TestUseCase_Execute_SettledWithinTolerance(t *testing.T) {
	rate := decimal.NewFromInt(11)
	booking := &domain.Booking{ID: uuid.New(), Price: 900000, TaxRateSnapshot: &rate, PaidAmount: 998950}

	bookings := &mockBookings{}
	bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	transactions := &mockTransactions{}
	transactions.On("List", mock.Anything, domain.TransactionsFilter{BookingID: &booking.ID}).
		Return([]*domain.Transaction{{ID: uuid.New(), Amount: 998950}}, nil)

	cfg := domain.DefaultResolvedConfig()
	cfg.TaxRate = decimal.NewFromInt(12)

	uc := NewUseCase(bookings, transactions, staticConfig{cfg: cfg}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID})
	require.NoError(t, err)

	assert.Equal(t, int64(999000), resp.Totals.GrandTotal)
	assert.Equal(t, ledger.TaxRateFromSnapshot, resp.Totals.TaxRateSource)
	assert.Equal(t, int64(50), resp.Totals.DueAmount)
	assert.True(t, resp.Settled)
	assert.Len(t, resp.Transactions, 1)
}

func TestUseCase_Execute_NotFound(t *testing.T) {
	bookings := &mockBookings{}
	bookings.On("GetByID", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrBookingNotFound)

	uc := NewUseCase(bookings, &mockTransactions{}, staticConfig{cfg: domain.DefaultResolvedConfig()}, nopLogger{})
	_, err := uc.Execute(context.Background(), &Request{BookingID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
