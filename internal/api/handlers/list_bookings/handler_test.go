package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
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

func (m *mockService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.BookingListResponse)
	return resp, args.Error(1)
}

func TestParseListRequest(t *testing.T) {
	roomID := uuid.New()
	r := httptest.NewRequest(http.MethodGet,
		"/api/v1/bookings?startDate=2025-03-01&endDate=2025-03-31&roomId="+roomID.String()+"&status=editing&includeCancelled=true", nil)

	req, err := ParseListRequest(r)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", req.StartDate.Format(domain.DateFormat))
	assert.Equal(t, "2025-03-31", req.EndDate.Format(domain.DateFormat))
	assert.Equal(t, roomID, *req.RoomID)
	assert.Equal(t, domain.StatusEditing, *req.Status)
	assert.True(t, req.IncludeCancelled)
	assert.Nil(t, req.ClientID)
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name   string
		target string
		svcErr error
		want   int
	}{
		{name: "ok", target: "/api/v1/bookings", want: http.StatusOK},
		{name: "bad status", target: "/api/v1/bookings?status=archived", want: http.StatusBadRequest},
		{name: "bad date", target: "/api/v1/bookings?startDate=03/01", want: http.StatusBadRequest},
		{name: "inverted range", target: "/api/v1/bookings?startDate=2025-03-31&endDate=2025-03-01", svcErr: bookings.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "storage", target: "/api/v1/bookings", svcErr: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.svcErr != nil {
				svc.On("List", mock.Anything, mock.Anything).Return(nil, tt.svcErr)
			} else {
				svc.On("List", mock.Anything, mock.Anything).Return(&models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil)
			}

			rec := httptest.NewRecorder()
			NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
