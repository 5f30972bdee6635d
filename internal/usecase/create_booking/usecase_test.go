package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	packageRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/studiopackage"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
	"github.com/m04kA/SMC-StudioService/pkg/types"
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

type countingMetrics struct{ conflicts int }

func (m *countingMetrics) ObserveBookingConflict(string) { m.conflicts++ }

type staticConfig struct{ cfg domain.ResolvedConfig }

func (s staticConfig) GetResolved(context.Context, *uuid.UUID) (domain.ResolvedConfig, error) {
	return s.cfg, nil
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	return b, m.Called(ctx, b).Error(0)
}
func (m *mockBookings) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

type mockRooms struct{ mock.Mock }

func (m *mockRooms) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Room)
	return r, args.Error(1)
}

type mockPackages struct{ mock.Mock }

func (m *mockPackages) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Package)
	return p, args.Error(1)
}

type mockClients struct{ mock.Mock }

func (m *mockClients) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Client)
	return c, args.Error(1)
}

type mockStaff struct{ mock.Mock }

func (m *mockStaff) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Staff)
	return s, args.Error(1)
}

type fixture struct {
	bookings *mockBookings
	rooms    *mockRooms
	packages *mockPackages
	clients  *mockClients
	staff    *mockStaff
	metrics  *countingMetrics
	uc       *UseCase

	roomID    uuid.UUID
	clientID  uuid.UUID
	packageID uuid.UUID
	day       time.Time
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  &mockBookings{},
		rooms:     &mockRooms{},
		packages:  &mockPackages{},
		clients:   &mockClients{},
		staff:     &mockStaff{},
		metrics:   &countingMetrics{},
		roomID:    uuid.New(),
		clientID:  uuid.New(),
		packageID: uuid.New(),
		day:       time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}

	f.rooms.On("GetByID", mock.Anything, f.roomID).Return(&domain.Room{ID: f.roomID, Name: "Room A"}, nil)
	f.clients.On("GetByID", mock.Anything, f.clientID).Return(&domain.Client{ID: f.clientID, Name: "Dewi"}, nil)
	f.packages.On("GetByID", mock.Anything, f.packageID).Return(&domain.Package{
		ID:            f.packageID,
		Name:          "Family",
		DurationHours: 2,
		BasePrice:     900000,
		CostBreakdown: []domain.CostItem{{Name: "Print", Amount: 50000}},
	}, nil)

	f.uc = NewUseCase(f.bookings, f.rooms, f.packages, f.clients, f.staff,
		staticConfig{cfg: domain.DefaultResolvedConfig()}, inlineTx{}, f.metrics, nopLogger{})
	f.uc.timeProvider = fixedTime{now: f.day.AddDate(0, 0, -3)}
	return f
}

func (f *fixture) request(start string) *Request {
	return &Request{
		Actor:     uuid.New(),
		ClientID:  f.clientID,
		PackageID: &f.packageID,
		RoomID:    f.roomID,
		Date:      f.day,
		StartTime: types.TimeString(start),
	}
}

func TestUseCase_Execute_CreatesWithSnapshots(t *testing.T) {
	f := newFixture()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), f.request("10:00"))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, "Dewi", b.ClientName)
	assert.Equal(t, int64(900000), b.Price)
	assert.Equal(t, 2, b.DurationHours)
	assert.Equal(t, domain.StatusBooked, b.Status)
	require.NotNil(t, b.TaxRateSnapshot)
	assert.Len(t, b.CostSnapshot, 1)
	assert.Equal(t, int64(999000), resp.Totals.GrandTotal)
	assert.Empty(t, resp.OverriddenConflicts)
}

func TestUseCase_Execute_ConflictRejected(t *testing.T) {
	f := newFixture()
	blocking := &domain.Booking{
		ID: uuid.New(), RoomID: f.roomID, Date: f.day, StartTime: "11:00", DurationHours: 2, Status: domain.StatusBooked,
	}
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{blocking}, nil)

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	require.ErrorIs(t, err, domain.ErrConflict)

	var conflict *domain.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, []uuid.UUID{blocking.ID}, conflict.BookingIDs)
	assert.Equal(t, 1, f.metrics.conflicts)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_ForceOverridesConflict(t *testing.T) {
	f := newFixture()
	blocking := &domain.Booking{
		ID: uuid.New(), RoomID: f.roomID, Date: f.day, StartTime: "11:00", DurationHours: 2, Status: domain.StatusBooked,
	}
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{blocking}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := f.request("10:00")
	req.Force = true

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{blocking.ID}, resp.OverriddenConflicts)
}

func TestUseCase_Execute_QuickBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := f.request("10:00")
	req.PackageID = nil
	req.Price = ptr.Ptr(int64(0))
	req.DurationHours = ptr.Ptr(1)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.Booking.PackageID)
	assert.Equal(t, int64(0), resp.Totals.GrandTotal)

	paid := f.request("10:00")
	paid.PackageID = nil
	paid.Price = ptr.Ptr(int64(100000))
	paid.DurationHours = ptr.Ptr(1)

	_, err = f.uc.Execute(context.Background(), paid)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUseCase_Execute_PackageNotFound(t *testing.T) {
	f := newFixture()
	missing := uuid.New()
	f.packages.On("GetByID", mock.Anything, missing).Return(nil, packageRepo.ErrPackageNotFound)

	req := f.request("10:00")
	req.PackageID = &missing

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPackageNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
