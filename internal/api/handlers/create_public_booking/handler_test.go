package create_public_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	createPublicBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_public_booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createPublicBooking.Request) (*createPublicBooking.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*createPublicBooking.Response)
	return resp, args.Error(1)
}

func body(packageID uuid.UUID, email string) string {
	return fmt.Sprintf(`{"clientName":"Sari","clientEmail":%q,"clientPhone":"+62 811","date":"2025-03-14","time":"10:00","packageId":%q}`,
		email, packageID)
}

func TestHandler_Created(t *testing.T) {
	packageID := uuid.New()

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createPublicBooking.Request) bool {
		return r.PackageID == packageID && r.ClientEmail == "sari@example.com" && r.StartTime == "10:00"
	})).Return(&createPublicBooking.Response{
		Booking: &domain.Booking{
			ID: uuid.New(), Status: domain.StatusInquiry, Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00", DurationHours: 2, PackageName: "Family", Price: 900000,
		},
		RoomName:  "Studio A",
		NewClient: true,
	}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/public/bookings", strings.NewReader(body(packageID, "sari@example.com")))
	NewHandler(uc, nopLogger{}).Handle(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "900000", "public response carries no prices")

	var resp PublicBookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "INQUIRY", resp.Status)
	assert.Equal(t, "Studio A", resp.RoomName)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name  string
		email string
		ucErr error
		want  int
	}{
		{name: "invalid email", email: "not-an-email", want: http.StatusBadRequest},
		{name: "no free room", email: "a@b.co", ucErr: createPublicBooking.ErrSlotNotAvailable, want: http.StatusConflict},
		{name: "package missing", email: "a@b.co", ucErr: createPublicBooking.ErrPackageNotFound, want: http.StatusNotFound},
		{name: "past date", email: "a@b.co", ucErr: createPublicBooking.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "outside hours", email: "a@b.co", ucErr: createPublicBooking.ErrOutsideOperatingHours, want: http.StatusBadRequest},
		{name: "storage", email: "a@b.co", ucErr: createPublicBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/public/bookings", strings.NewReader(body(uuid.New(), tt.email)))
			NewHandler(uc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
