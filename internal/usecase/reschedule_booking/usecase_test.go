package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
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

type nopMetrics struct{}

func (nopMetrics) ObserveBookingConflict(string) {}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}
func (m *mockBookings) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}
func (m *mockBookings) Update(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, b)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	saved := b.Clone()
	saved.Version++
	return saved, nil
}

type mockRooms struct{ mock.Mock }

func (m *mockRooms) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Room)
	return r, args.Error(1)
}

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func existingBooking(roomID uuid.UUID, start string) *domain.Booking {
	return &domain.Booking{
		ID:            uuid.New(),
		RoomID:        roomID,
		Date:          day,
		StartTime:     types.TimeString(start),
		DurationHours: 2,
		Status:        domain.StatusBooked,
		Version:       3,
	}
}

func TestUseCase_Execute_MovesWithinSameRoom(t *testing.T) {
	roomID := uuid.New()
	target := existingBooking(roomID, "10:00")

	bookings := &mockBookings{}
	bookings.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	// Сама бронь тоже возвращается выборкой дня и не считается конфликтом
	bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{target}, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := NewUseCase(bookings, &mockRooms{}, inlineTx{}, nopMetrics{}, nopLogger{})
	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     uuid.New(),
		BookingID: target.ID,
		StartTime: ptr.Ptr(types.TimeString("11:00")),
	})
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("11:00"), resp.Booking.StartTime)
	assert.Equal(t, 4, resp.Booking.Version)
	assert.Equal(t, types.TimeString("10:00"), target.StartTime, "input snapshot must stay untouched")
}

func TestUseCase_Execute_ConflictAndForce(t *testing.T) {
	roomID := uuid.New()
	target := existingBooking(roomID, "08:00")
	blocking := existingBooking(roomID, "13:00")

	bookings := &mockBookings{}
	bookings.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{target, blocking}, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(nil)

	uc := NewUseCase(bookings, &mockRooms{}, inlineTx{}, nopMetrics{}, nopLogger{})
	req := &Request{
		Actor:     uuid.New(),
		BookingID: target.ID,
		StartTime: ptr.Ptr(types.TimeString("12:00")),
	}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrConflict)
	bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	req.ForceWithoutValidation = true
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{blocking.ID}, resp.OverriddenConflicts)
}

func TestUseCase_Execute_VersionConflict(t *testing.T) {
	roomID := uuid.New()
	target := existingBooking(roomID, "10:00")

	bookings := &mockBookings{}
	bookings.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(bookingRepo.ErrVersionConflict)

	uc := NewUseCase(bookings, &mockRooms{}, inlineTx{}, nopMetrics{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		Actor: uuid.New(), BookingID: target.ID, DurationHours: ptr.Ptr(3),
	})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)

	_, err = uc.Execute(context.Background(), &Request{
		Actor: uuid.New(), BookingID: target.ID, DurationHours: ptr.Ptr(3), ExpectedVersion: ptr.Ptr(2),
	})
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestUseCase_Execute_RoomChecks(t *testing.T) {
	roomID, archivedID := uuid.New(), uuid.New()
	target := existingBooking(roomID, "10:00")

	bookings := &mockBookings{}
	bookings.On("GetByID", mock.Anything, target.ID).Return(target, nil)
	rooms := &mockRooms{}
	rooms.On("GetByID", mock.Anything, archivedID).Return(&domain.Room{ID: archivedID, Archived: true}, nil)

	uc := NewUseCase(bookings, rooms, inlineTx{}, nopMetrics{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Actor: uuid.New(), BookingID: target.ID, RoomID: &archivedID})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = uc.Execute(context.Background(), &Request{Actor: uuid.New(), BookingID: target.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
