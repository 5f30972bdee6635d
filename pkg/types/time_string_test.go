package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "short form", input: "09:30", want: "09:30"},
		{name: "database form", input: "18:00:00", want: "18:00"},
		{name: "garbage", input: "nine", wantErr: true},
		{name: "out of range", input: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_MinutesAndOrder(t *testing.T) {
	ts := TimeString("10:30")
	assert.Equal(t, 630, ts.Minutes())

	later, err := NewTimeStringFromMinutes(ts.Minutes() + 90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), later)
	assert.True(t, ts.IsBefore(later))
	assert.False(t, later.IsBefore(ts))

	_, err = NewTimeStringFromMinutes(TimeString("23:00").Minutes() + 60)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}
