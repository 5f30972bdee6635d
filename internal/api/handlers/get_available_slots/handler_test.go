package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StudioService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/rooms/{roomId}/available-slots", h.Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_PublicSlots(t *testing.T) {
	roomID := uuid.New()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableSlots.Request{
		RoomID: roomID, Date: date, DurationHours: 2, Audience: domain.AudiencePublic, OnlyAvailable: true,
	}).Return(&getAvailableSlots.Response{
		Date: date, RoomID: roomID, DurationHours: 2, GranularityMinutes: 30,
		OpenTime: "09:00", CloseTime: "17:00",
		Slots: []getAvailableSlots.Slot{{StartTime: "09:00", EndTime: "11:00", Available: true}},
	}, nil)

	rec := serve(NewHandler(uc, domain.AudiencePublic, nopLogger{}),
		"/api/v1/rooms/"+roomID.String()+"/available-slots?date=2025-03-14&durationHours=2&onlyAvailable=true")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2025-03-14", resp.Date)
	assert.Equal(t, 30, resp.GranularityMinutes)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "11:00", resp.Slots[0].EndTime)
	uc.AssertExpectations(t)
}

func TestHandler_Errors(t *testing.T) {
	roomID := uuid.New().String()

	tests := []struct {
		name   string
		target string
		ucErr  error
		want   int
	}{
		{name: "bad room id", target: "/api/v1/rooms/abc/available-slots?date=2025-03-14", want: http.StatusBadRequest},
		{name: "missing date", target: "/api/v1/rooms/" + roomID + "/available-slots", want: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/rooms/" + roomID + "/available-slots?date=tomorrow", want: http.StatusBadRequest},
		{name: "bad duration", target: "/api/v1/rooms/" + roomID + "/available-slots?date=2025-03-14&durationHours=x", want: http.StatusBadRequest},
		{name: "room not found", target: "/api/v1/rooms/" + roomID + "/available-slots?date=2025-03-14", ucErr: getAvailableSlots.ErrRoomNotFound, want: http.StatusNotFound},
		{name: "persistence", target: "/api/v1/rooms/" + roomID + "/available-slots?date=2025-03-14", ucErr: getAvailableSlots.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(NewHandler(uc, domain.AudiencePublic, nopLogger{}), tt.target)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
