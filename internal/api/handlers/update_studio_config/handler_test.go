package update_studio_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig"
	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig/models"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct{ mock.Mock }

func (m *mockService) Upsert(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.ConfigResponse)
	return resp, args.Error(1)
}

func (m *mockService) DeleteRoomOverride(ctx context.Context, roomID uuid.UUID) error {
	return m.Called(ctx, roomID).Error(0)
}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/studio/config", strings.NewReader(body)))
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("studio level", func(t *testing.T) {
		svc := &mockService{}
		open := types.TimeString("08:00")
		mode := domain.TaxModeNormal
		svc.On("Upsert", mock.Anything, mock.MatchedBy(func(r *models.UpdateConfigRequest) bool {
			return r.RoomID == nil && r.OpenTime != nil && *r.OpenTime == open && r.TaxMode != nil && *r.TaxMode == mode
		})).Return(&models.ConfigResponse{ID: 1, OpenTime: &open, TaxMode: &mode}, nil)

		rec := put(NewHandler(svc, nopLogger{}), `{"openTime":"08:00","taxMode":"NORMAL"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"openTime":"08:00"`)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Upsert", mock.Anything, mock.Anything).Return(nil, studioconfig.ErrRoomNotFound)

		rec := put(NewHandler(svc, nopLogger{}), `{"roomId":"`+uuid.NewString()+`","openTime":"10:00"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("inverted hours", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Upsert", mock.Anything, mock.Anything).Return(nil, studioconfig.ErrInvalidInput)

		rec := put(NewHandler(svc, nopLogger{}), `{"openTime":"20:00","closeTime":"08:00"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := put(NewHandler(&mockService{}, nopLogger{}), `{"taxRateee":11}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
