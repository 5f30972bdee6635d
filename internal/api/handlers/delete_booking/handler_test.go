package delete_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct{ mock.Mock }

func (m *mockService) Delete(ctx context.Context, id uuid.UUID, actor uuid.UUID) error {
	return m.Called(ctx, id, actor).Error(0)
}

func serve(h *Handler, bookingID string, actor *uuid.UUID) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/bookings/"+bookingID, nil)
	if actor != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *actor))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Deleted(t *testing.T) {
	bookingID := uuid.New()
	actor := uuid.New()

	svc := &mockService{}
	svc.On("Delete", mock.Anything, bookingID, actor).Return(nil)

	rec := serve(NewHandler(svc, nopLogger{}), bookingID.String(), &actor)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	actor := uuid.New()

	tests := []struct {
		name   string
		id     string
		actor  *uuid.UUID
		svcErr error
		want   int
	}{
		{name: "bad id", id: "x", actor: &actor, want: http.StatusBadRequest},
		{name: "missing user", id: uuid.NewString(), want: http.StatusUnauthorized},
		{name: "not found", id: uuid.NewString(), actor: &actor, svcErr: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "storage", id: uuid.NewString(), actor: &actor, svcErr: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.svcErr != nil {
				svc.On("Delete", mock.Anything, mock.Anything, mock.Anything).Return(tt.svcErr)
			}
			rec := serve(NewHandler(svc, nopLogger{}), tt.id, tt.actor)
			assert.Equal(t, tt.want, rec.Code)
			if tt.svcErr == nil {
				svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
