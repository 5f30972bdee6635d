package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct{ mock.Mock }

func (m *mockService) GetByID(ctx context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.BookingResponse)
	return b, args.Error(1)
}

func serve(h *Handler, bookingID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil))
	return rec
}

func TestHandler_Found(t *testing.T) {
	bookingID := uuid.New()

	svc := &mockService{}
	svc.On("GetByID", mock.Anything, bookingID).Return(&models.BookingResponse{
		ID: bookingID, Date: "2025-03-14", StartTime: "10:00", EndTime: "12:00",
		DurationHours: 2, Status: domain.StatusBooked, Version: 3,
	}, nil)

	rec := serve(NewHandler(svc, nopLogger{}), bookingID.String())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, bookingID, resp.ID)
	assert.Equal(t, 3, resp.Version)
	assert.Equal(t, domain.StatusBooked, resp.Status)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		svcErr error
		want   int
	}{
		{name: "bad id", id: "42", want: http.StatusBadRequest},
		{name: "not found", id: uuid.NewString(), svcErr: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "storage", id: uuid.NewString(), svcErr: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.svcErr != nil {
				svc.On("GetByID", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			}
			rec := serve(NewHandler(svc, nopLogger{}), tt.id)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
