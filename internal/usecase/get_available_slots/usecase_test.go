package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type mockBookings struct{ mock.Mock }

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

type staticConfig struct{ cfg domain.ResolvedConfig }

func (s staticConfig) GetResolved(context.Context, *uuid.UUID) (domain.ResolvedConfig, error) {
	return s.cfg, nil
}

func newUseCase(bookings *mockBookings, rooms *mockRooms, now time.Time) *UseCase {
	cfg := domain.DefaultResolvedConfig()
	cfg.OpenTime = "09:00"
	cfg.CloseTime = "13:00"
	cfg.PublicSlotMinutes = 60
	cfg.InternalSlotMinutes = 30

	uc := NewUseCase(bookings, rooms, staticConfig{cfg: cfg}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestUseCase_Execute_PublicAvailableOnly(t *testing.T) {
	roomID := uuid.New()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	rooms := &mockRooms{}
	rooms.On("GetByID", mock.Anything, roomID).Return(&domain.Room{ID: roomID, Name: "Room A"}, nil)
	bookings := &mockBookings{}
	bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{{
		ID: uuid.New(), RoomID: roomID, Date: day, StartTime: "10:00", DurationHours: 2, Status: domain.StatusBooked,
	}}, nil)

	uc := newUseCase(bookings, rooms, day.AddDate(0, 0, -1))
	resp, err := uc.Execute(context.Background(), &Request{
		RoomID: roomID, Date: day, DurationHours: 1, Audience: domain.AudiencePublic, OnlyAvailable: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.GranularityMinutes)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[1].StartTime)
}

func TestUseCase_Execute_PastDateIsEmpty(t *testing.T) {
	roomID := uuid.New()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	rooms := &mockRooms{}
	rooms.On("GetByID", mock.Anything, roomID).Return(&domain.Room{ID: roomID}, nil)
	bookings := &mockBookings{}

	uc := newUseCase(bookings, rooms, day.AddDate(0, 0, 2))
	resp, err := uc.Execute(context.Background(), &Request{
		RoomID: roomID, Date: day, DurationHours: 1, Audience: domain.AudienceInternal,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	bookings.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestUseCase_Execute_TodayClosesStartedSlots(t *testing.T) {
	roomID := uuid.New()
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	rooms := &mockRooms{}
	rooms.On("GetByID", mock.Anything, roomID).Return(&domain.Room{ID: roomID}, nil)
	bookings := &mockBookings{}
	bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)

	uc := newUseCase(bookings, rooms, day.Add(10*time.Hour+15*time.Minute))
	resp, err := uc.Execute(context.Background(), &Request{
		RoomID: roomID, Date: day, DurationHours: 1, Audience: domain.AudiencePublic, OnlyAvailable: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].StartTime)
}

func TestUseCase_Execute_RoomErrors(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	missing, archived := uuid.New(), uuid.New()

	rooms := &mockRooms{}
	rooms.On("GetByID", mock.Anything, missing).Return(nil, roomRepo.ErrRoomNotFound)
	rooms.On("GetByID", mock.Anything, archived).Return(&domain.Room{ID: archived, Archived: true}, nil)

	uc := newUseCase(&mockBookings{}, rooms, day)

	_, err := uc.Execute(context.Background(), &Request{RoomID: missing, Date: day, DurationHours: 1, Audience: domain.AudiencePublic})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{RoomID: archived, Date: day, DurationHours: 1, Audience: domain.AudiencePublic})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = uc.Execute(context.Background(), &Request{RoomID: missing, Date: day, DurationHours: 0, Audience: domain.AudiencePublic})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
