package settle_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	accountRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/account"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingMetrics struct {
	modes   []string
	amounts []int64
}

func (m *recordingMetrics) ObserveSettlement(mode string, amount int64) {
	m.modes = append(m.modes, mode)
	m.amounts = append(m.amounts, amount)
}

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
func (m *mockBookings) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if err := m.Called(ctx, b).Error(0); err != nil {
		return nil, err
	}
	return b, nil
}

type mockAccounts struct{ mock.Mock }

func (m *mockAccounts) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*domain.Account)
	return a, args.Error(1)
}
func (m *mockAccounts) UpdateBalance(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	if err := m.Called(ctx, a).Error(0); err != nil {
		return nil, err
	}
	return a, nil
}

type mockTransactions struct{ mock.Mock }

func (m *mockTransactions) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	if err := m.Called(ctx, t).Error(0); err != nil {
		return nil, err
	}
	return t, nil
}

type fixture struct {
	bookings     *mockBookings
	accounts     *mockAccounts
	transactions *mockTransactions
	metrics      *recordingMetrics
	booking      *domain.Booking
	account      *domain.Account
	uc           *UseCase
}

func newFixture(paid, balance int64) *fixture {
	rate := decimal.NewFromInt(11)
	f := &fixture{
		bookings:     &mockBookings{},
		accounts:     &mockAccounts{},
		transactions: &mockTransactions{},
		metrics:      &recordingMetrics{},
		booking: &domain.Booking{
			ID: uuid.New(), RoomID: uuid.New(), ClientName: "Dewi",
			Price: 900000, TaxRateSnapshot: &rate, PaidAmount: paid, Version: 1,
		},
		account: &domain.Account{ID: uuid.New(), Name: "BCA", Type: domain.AccountBank, Balance: balance, Version: 1},
	}

	f.bookings.On("GetByID", mock.Anything, f.booking.ID).Return(f.booking, nil)
	f.accounts.On("GetByID", mock.Anything, f.account.ID).Return(f.account, nil)

	f.uc = NewUseCase(f.bookings, f.accounts, f.transactions,
		staticConfig{cfg: domain.DefaultResolvedConfig()}, inlineTx{}, f.metrics, nopLogger{})
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}
	return f
}

func (f *fixture) request(amount int64, mode string) *Request {
	return &Request{
		Actor:     uuid.New(),
		BookingID: f.booking.ID,
		AccountID: f.account.ID,
		Amount:    amount,
		Mode:      mode,
	}
}

func TestUseCase_Execute_PaymentSettlesBooking(t *testing.T) {
	f := newFixture(0, 0)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.accounts.On("UpdateBalance", mock.Anything, mock.Anything).Return(nil)
	f.transactions.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), f.request(999000, "payment"))
	require.NoError(t, err)

	assert.Equal(t, int64(999000), resp.Booking.PaidAmount)
	assert.Equal(t, int64(999000), resp.Account.Balance)
	assert.Equal(t, domain.TransactionIncome, resp.Transaction.Type)
	assert.Equal(t, int64(0), resp.Totals.DueAmount)
	assert.True(t, resp.Settled)
	assert.Equal(t, []string{"PAYMENT"}, f.metrics.modes)

	assert.Equal(t, int64(0), f.booking.PaidAmount, "loaded booking must stay untouched")
	assert.Equal(t, int64(0), f.account.Balance, "loaded account must stay untouched")
}

func TestUseCase_Execute_OverpaymentWritesNothing(t *testing.T) {
	f := newFixture(500000, 500000)

	_, err := f.uc.Execute(context.Background(), f.request(600000, "PAYMENT"))
	require.ErrorIs(t, err, domain.ErrOverpayment)

	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.accounts.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything)
	f.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.metrics.modes)
}

func TestUseCase_Execute_RefundInsufficientFunds(t *testing.T) {
	f := newFixture(500000, 100000)

	_, err := f.uc.Execute(context.Background(), f.request(200000, "REFUND"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
}

func TestUseCase_Execute_WriteFailures(t *testing.T) {
	f := newFixture(0, 0)
	f.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	f.accounts.On("UpdateBalance", mock.Anything, mock.Anything).Return(accountRepo.ErrVersionConflict).Once()
	f.accounts.On("UpdateBalance", mock.Anything, mock.Anything).Return(nil)
	f.transactions.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := f.uc.Execute(context.Background(), f.request(100000, "PAYMENT"))
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	_, err = f.uc.Execute(context.Background(), f.request(100000, "PAYMENT"))
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Empty(t, f.metrics.modes)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	f := newFixture(0, 0)

	_, err := f.uc.Execute(context.Background(), f.request(0, "PAYMENT"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), f.request(100, "CHARGEBACK"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
