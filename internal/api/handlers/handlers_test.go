package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: fmt.Errorf("x: %w", domain.ErrValidation), want: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("x: booking %w", domain.ErrNotFound), want: http.StatusNotFound},
		{name: "conflict", err: domain.NewConflictError(uuid.New(), nil), want: http.StatusConflict},
		{name: "version", err: domain.ErrVersionConflict, want: http.StatusConflict},
		{name: "integrity", err: &domain.IntegrityError{Entity: "room"}, want: http.StatusConflict},
		{name: "overpayment", err: domain.ErrOverpayment, want: http.StatusUnprocessableEntity},
		{name: "insufficient", err: domain.ErrInsufficientFunds, want: http.StatusUnprocessableEntity},
		{name: "persistence", err: domain.ErrPersistence, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestRespondDomainError_ConflictDetails(t *testing.T) {
	roomID := uuid.New()
	blocking := &domain.Booking{ID: uuid.New()}
	err := fmt.Errorf("create_booking: %w", domain.NewConflictError(roomID, []*domain.Booking{blocking}))

	rec := httptest.NewRecorder()
	RespondDomainError(rec, err, "слот занят")

	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error   string `json:"error"`
		Details struct {
			RoomID     uuid.UUID   `json:"roomId"`
			BookingIDs []uuid.UUID `json:"bookingIds"`
		} `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "слот занят", body.Error)
	assert.Equal(t, roomID, body.Details.RoomID)
	assert.Equal(t, []uuid.UUID{blocking.ID}, body.Details.BookingIDs)
}

func TestRespondDomainError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("%w: pq: connection reset", domain.ErrPersistence), "не важно")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq")
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var ok payload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Studio A"}`))
	require.NoError(t, DecodeJSON(r, &ok))
	assert.Equal(t, "Studio A", ok.Name)

	var unknown payload
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(r, &unknown))
}

func TestValidateStruct(t *testing.T) {
	type dto struct {
		Email  string `json:"email" validate:"required,email"`
		Amount int64  `json:"amount" validate:"gt=0"`
	}

	assert.Nil(t, ValidateStruct(dto{Email: "a@b.co", Amount: 1}))

	violations := ValidateStruct(dto{Email: "nope", Amount: 0})
	assert.Equal(t, map[string]string{"Email": "email", "Amount": "gt"}, violations)
}

func TestPathUUIDAndQueryHelpers(t *testing.T) {
	id := uuid.New()
	r := httptest.NewRequest(http.MethodGet, "/?date=2025-03-14&durationHours=2&onlyAvailable=true&roomId=bad", nil)
	r = mux.SetURLVars(r, map[string]string{"bookingId": id.String()})

	got, err := PathUUID(r, "bookingId")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = PathUUID(r, "roomId")
	assert.ErrorIs(t, err, ErrMissingParam)

	date, err := QueryDate(r, "date")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", date.Format(domain.DateFormat))

	hours, err := QueryInt(r, "durationHours")
	require.NoError(t, err)
	assert.Equal(t, 2, *hours)

	assert.True(t, QueryBool(r, "onlyAvailable"))
	assert.False(t, QueryBool(r, "missing"))

	_, err = QueryUUID(r, "roomId")
	assert.Error(t, err)

	missing, err := QueryUUID(r, "clientId")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
