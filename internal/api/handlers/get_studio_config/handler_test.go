package get_studio_config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig/models"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type mockService struct{ mock.Mock }

func (m *mockService) Get(ctx context.Context, roomID *uuid.UUID) (*models.ResolvedConfigResponse, error) {
	args := m.Called(ctx, roomID)
	resp, _ := args.Get(0).(*models.ResolvedConfigResponse)
	return resp, args.Error(1)
}

func (m *mockService) GetAll(ctx context.Context) (*models.ConfigListResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(*models.ConfigListResponse)
	return resp, args.Error(1)
}

func get(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	t.Run("studio level", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Get", mock.Anything, (*uuid.UUID)(nil)).Return(&models.ResolvedConfigResponse{
			TaxRate: decimal.RequireFromString("0.11"), TaxMode: domain.TaxModeNormal,
			OpenTime: "08:00", CloseTime: "22:00", PublicSlotMinutes: 60, InternalSlotMinutes: 30,
		}, nil)

		rec := get(NewHandler(svc, nopLogger{}).Handle, "/api/v1/studio/config")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.ResolvedConfigResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Nil(t, resp.RoomID)
		assert.Equal(t, types.TimeString("08:00"), resp.OpenTime)
		assert.Equal(t, 60, resp.PublicSlotMinutes)
	})

	t.Run("room override", func(t *testing.T) {
		roomID := uuid.New()
		svc := &mockService{}
		svc.On("Get", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool {
			return id != nil && *id == roomID
		})).Return(&models.ResolvedConfigResponse{RoomID: &roomID, OpenTime: "10:00", CloseTime: "18:00"}, nil)

		rec := get(NewHandler(svc, nopLogger{}).Handle, "/api/v1/studio/config?roomId="+roomID.String())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"roomId":"`+roomID.String()+`"`)
		svc.AssertExpectations(t)
	})

	t.Run("bad room id", func(t *testing.T) {
		svc := &mockService{}
		rec := get(NewHandler(svc, nopLogger{}).Handle, "/api/v1/studio/config?roomId=studio-a")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &mockService{}
		svc.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		rec := get(NewHandler(svc, nopLogger{}).Handle, "/api/v1/studio/config")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestHandleLevels(t *testing.T) {
	roomID := uuid.New()
	open := types.TimeString("09:00")

	svc := &mockService{}
	svc.On("GetAll", mock.Anything).Return(&models.ConfigListResponse{Configs: []models.ConfigResponse{
		{ID: 1, OpenTime: &open},
		{ID: 2, RoomID: &roomID},
	}}, nil)

	rec := get(NewHandler(svc, nopLogger{}).HandleLevels, "/api/v1/studio/config/levels")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ConfigListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Configs, 2)
	assert.Nil(t, resp.Configs[0].RoomID)
	require.NotNil(t, resp.Configs[1].RoomID)
	assert.Equal(t, roomID, *resp.Configs[1].RoomID)

	failing := &mockService{}
	failing.On("GetAll", mock.Anything).Return(nil, errors.New("connection refused"))
	rec = get(NewHandler(failing, nopLogger{}).HandleLevels, "/api/v1/studio/config/levels")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
