package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

var (
	day   = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	roomA = uuid.MustParse("0b6a5c2e-1d1f-4b8e-9a0a-0000000000a1")
	roomB = uuid.MustParse("0b6a5c2e-1d1f-4b8e-9a0a-0000000000b2")
)

func booking(room uuid.UUID, date time.Time, start string, hours int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            uuid.New(),
		RoomID:        room,
		Date:          date,
		StartTime:     types.TimeString(start),
		DurationHours: hours,
		Status:        status,
	}
}

func candidate(start string, hours int) Candidate {
	return Candidate{
		Date:          day,
		RoomID:        roomA,
		StartMinutes:  types.TimeString(start).Minutes(),
		DurationHours: hours,
	}
}

func TestHasConflict_RoomAScenario(t *testing.T) {
	existing := []*domain.Booking{booking(roomA, day, "10:00", 2, domain.StatusBooked)}

	assert.True(t, HasConflict(candidate("11:00", 2), existing, nil), "11:00-13:00 overlaps 10:00-12:00")
	assert.False(t, HasConflict(candidate("12:00", 2), existing, nil), "12:00-14:00 only touches 10:00-12:00")
}

func TestHasConflict_Filters(t *testing.T) {
	tests := []struct {
		name     string
		existing *domain.Booking
		exclude  bool
		want     bool
	}{
		{name: "same room overlapping", existing: booking(roomA, day, "09:00", 3, domain.StatusShooting), want: true},
		{name: "cancelled is ignored", existing: booking(roomA, day, "09:00", 3, domain.StatusCancelled), want: false},
		{name: "completed still blocks", existing: booking(roomA, day, "09:00", 3, domain.StatusCompleted), want: true},
		{name: "other room", existing: booking(roomB, day, "09:00", 3, domain.StatusBooked), want: false},
		{name: "other day", existing: booking(roomA, day.AddDate(0, 0, 1), "09:00", 3, domain.StatusBooked), want: false},
		{name: "excluded id", existing: booking(roomA, day, "09:00", 3, domain.StatusBooked), exclude: true, want: false},
		{name: "contained interval", existing: booking(roomA, day, "10:30", 1, domain.StatusInquiry), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exclude *uuid.UUID
			if tt.exclude {
				exclude = &tt.existing.ID
			}
			got := HasConflict(candidate("10:00", 2), []*domain.Booking{tt.existing}, exclude)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflict_Symmetry(t *testing.T) {
	starts := []string{"08:00", "09:00", "09:30", "10:00", "11:00", "12:00", "13:30"}
	durations := []int{1, 2, 3}

	for _, s1 := range starts {
		for _, d1 := range durations {
			for _, s2 := range starts {
				for _, d2 := range durations {
					a := booking(roomA, day, s1, d1, domain.StatusBooked)
					b := booking(roomA, day, s2, d2, domain.StatusBooked)

					ab := HasConflict(CandidateFromBooking(a), []*domain.Booking{b}, nil)
					ba := HasConflict(CandidateFromBooking(b), []*domain.Booking{a}, nil)
					assert.Equal(t, ab, ba, "A=%s+%dh B=%s+%dh", s1, d1, s2, d2)
				}
			}
		}
	}
}

func TestHasConflict_AdjacencyNeverConflicts(t *testing.T) {
	for hours := 1; hours <= 4; hours++ {
		existing := booking(roomA, day, "08:00", hours, domain.StatusBooked)
		endMinutes := existing.EndMinutes()

		next := Candidate{Date: day, RoomID: roomA, StartMinutes: endMinutes, DurationHours: 1}
		assert.False(t, HasConflict(next, []*domain.Booking{existing}, nil))

		before := Candidate{Date: day, RoomID: roomA, StartMinutes: existing.StartMinutes() - 60, DurationHours: 1}
		assert.False(t, HasConflict(before, []*domain.Booking{existing}, nil))
	}
}

func TestConflicts_ReturnsBlockingBookings(t *testing.T) {
	first := booking(roomA, day, "09:00", 2, domain.StatusBooked)
	second := booking(roomA, day, "11:00", 1, domain.StatusBooked)
	free := booking(roomA, day, "15:00", 1, domain.StatusBooked)

	got := Conflicts(candidate("10:00", 2), []*domain.Booking{first, second, free}, nil)

	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
}

func TestValidateCandidate(t *testing.T) {
	assert.ErrorIs(t, ValidateCandidate(candidate("10:00", 0)), domain.ErrValidation)
	assert.ErrorIs(t, ValidateCandidate(candidate("23:00", 2)), domain.ErrValidation)
	assert.NoError(t, ValidateCandidate(candidate("22:00", 2)))
}

func TestListSlots(t *testing.T) {
	existing := []*domain.Booking{booking(roomA, day, "10:00", 2, domain.StatusBooked)}

	slots, err := ListSlots(SlotQuery{
		Date:               day,
		RoomID:             roomA,
		DurationHours:      1,
		OperatingStart:     "09:00",
		OperatingEnd:       "13:00",
		GranularityMinutes: 30,
	}, existing)
	require.NoError(t, err)

	want := []Slot{
		{StartTime: "09:00", EndTime: "10:00", Available: true},
		{StartTime: "09:30", EndTime: "10:30", Available: false},
		{StartTime: "10:00", EndTime: "11:00", Available: false},
		{StartTime: "10:30", EndTime: "11:30", Available: false},
		{StartTime: "11:00", EndTime: "12:00", Available: false},
		{StartTime: "11:30", EndTime: "12:30", Available: false},
		{StartTime: "12:00", EndTime: "13:00", Available: true},
		{StartTime: "12:30", EndTime: "13:30", Available: false},
	}
	assert.Equal(t, want, slots)

	available := AvailableOnly(slots)
	require.Len(t, available, 2)
	assert.Equal(t, types.TimeString("09:00"), available[0].StartTime)
}

func TestListSlots_IsRestartable(t *testing.T) {
	q := SlotQuery{
		Date: day, RoomID: roomA, DurationHours: 2,
		OperatingStart: "09:00", OperatingEnd: "17:00", GranularityMinutes: 60,
	}

	first, err := ListSlots(q, nil)
	require.NoError(t, err)
	second, err := ListSlots(q, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 8)
	assert.False(t, first[7].Available, "16:00 + 2h ends after closing")
}

func TestListSlots_InvalidInput(t *testing.T) {
	base := SlotQuery{
		Date: day, RoomID: roomA, DurationHours: 1,
		OperatingStart: "09:00", OperatingEnd: "17:00", GranularityMinutes: 60,
	}

	zeroDuration := base
	zeroDuration.DurationHours = 0
	_, err := ListSlots(zeroDuration, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	zeroStep := base
	zeroStep.GranularityMinutes = 0
	_, err = ListSlots(zeroStep, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	inverted := base
	inverted.OperatingStart, inverted.OperatingEnd = "17:00", "09:00"
	_, err = ListSlots(inverted, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
