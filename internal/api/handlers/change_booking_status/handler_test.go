package change_booking_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/workflow"
	changeBookingStatus "github.com/m04kA/SMC-StudioService/internal/usecase/change_booking_status"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *changeBookingStatus.Request) (*changeBookingStatus.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*changeBookingStatus.Response)
	return resp, args.Error(1)
}

func serve(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", h.Handle)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_AutomationFired(t *testing.T) {
	bookingID := uuid.New()
	editor := uuid.New()

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *changeBookingStatus.Request) bool {
		return r.BookingID == bookingID && r.Status == "EDITING"
	})).Return(&changeBookingStatus.Response{
		Booking: &domain.Booking{
			ID: bookingID, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), StartTime: "10:00",
			DurationHours: 2, Status: domain.StatusEditing, SecondaryStaffID: &editor,
			Tasks: []domain.Task{{ID: uuid.New(), Title: "Color grade"}},
		},
		Automation: workflow.Result{
			PreviousStatus:  domain.StatusCulling,
			AutomationFired: true,
			AddedTasks:      []domain.Task{{ID: uuid.New(), Title: "Color grade"}},
			AssignedEditor:  &editor,
		},
	}, nil)

	rec := serve(NewHandler(uc, nopLogger{}), bookingID.String(), `{"status":"EDITING"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChangeStatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Automation.Fired)
	assert.Equal(t, domain.StatusCulling, resp.Automation.PreviousStatus)
	require.Len(t, resp.Automation.AddedTasks, 1)
	assert.Equal(t, "Color grade", resp.Automation.AddedTasks[0].Title)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		body  string
		ucErr error
		want  int
	}{
		{name: "bad id", id: "x", body: `{"status":"BOOKED"}`, want: http.StatusBadRequest},
		{name: "empty status", id: uuid.NewString(), body: `{"status":""}`, want: http.StatusBadRequest},
		{name: "unknown status", id: uuid.NewString(), body: `{"status":"ARCHIVED"}`, ucErr: changeBookingStatus.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "not found", id: uuid.NewString(), body: `{"status":"BOOKED"}`, ucErr: changeBookingStatus.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "version", id: uuid.NewString(), body: `{"status":"BOOKED","expectedVersion":3}`, ucErr: changeBookingStatus.ErrVersionConflict, want: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}
			rec := serve(NewHandler(uc, nopLogger{}), tt.id, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
