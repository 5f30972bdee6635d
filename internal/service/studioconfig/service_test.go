package studioconfig

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	roomRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/room"
	configRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/studioconfig"
	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig/models"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

type mockConfigRepo struct {
	mock.Mock
}

func (m *mockConfigRepo) Create(ctx context.Context, c *domain.StudioConfig) (*domain.StudioConfig, error) {
	args := m.Called(ctx, c)
	return c, args.Error(0)
}

func (m *mockConfigRepo) GetByRoom(ctx context.Context, roomID *uuid.UUID) (*domain.StudioConfig, error) {
	args := m.Called(ctx, roomID)
	c, _ := args.Get(0).(*domain.StudioConfig)
	return c, args.Error(1)
}

func (m *mockConfigRepo) GetHierarchy(ctx context.Context, roomID *uuid.UUID) ([]*domain.StudioConfig, error) {
	args := m.Called(ctx, roomID)
	c, _ := args.Get(0).([]*domain.StudioConfig)
	return c, args.Error(1)
}

func (m *mockConfigRepo) GetAll(ctx context.Context) ([]*domain.StudioConfig, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*domain.StudioConfig)
	return c, args.Error(1)
}

func (m *mockConfigRepo) Update(ctx context.Context, id int64, c *domain.StudioConfig) (*domain.StudioConfig, error) {
	args := m.Called(ctx, id, c)
	c.ID = id
	return c, args.Error(0)
}

func (m *mockConfigRepo) DeleteByRoom(ctx context.Context, roomID uuid.UUID) error {
	return m.Called(ctx, roomID).Error(0)
}

type mockRoomRepo struct {
	mock.Mock
}

func (m *mockRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Room)
	return r, args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestService_GetResolved_DefaultsWhenEmpty(t *testing.T) {
	repo := &mockConfigRepo{}
	repo.On("GetHierarchy", mock.Anything, (*uuid.UUID)(nil)).Return(nil, nil)

	svc := NewService(repo, &mockRoomRepo{}, domain.DefaultResolvedConfig(), nopLogger{})

	got, err := svc.GetResolved(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultResolvedConfig(), got)
}

func TestService_Upsert_CreatesRoomOverride(t *testing.T) {
	roomID := uuid.New()
	repo := &mockConfigRepo{}
	rooms := &mockRoomRepo{}

	rooms.On("GetByID", mock.Anything, roomID).Return(&domain.Room{ID: roomID}, nil)
	repo.On("GetByRoom", mock.Anything, &roomID).Return(nil, configRepo.ErrConfigNotFound)
	repo.On("GetHierarchy", mock.Anything, &roomID).Return([]*domain.StudioConfig{
		{ID: 1, CloseTime: ptr.Ptr(types.TimeString("20:00"))},
	}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.StudioConfig")).Return(nil)

	svc := NewService(repo, rooms, domain.DefaultResolvedConfig(), nopLogger{})

	resp, err := svc.Upsert(context.Background(), &models.UpdateConfigRequest{
		RoomID:   &roomID,
		OpenTime: ptr.Ptr(types.TimeString("11:00")),
		TaxRate:  ptr.Ptr(decimal.RequireFromString("12.5")),
	})
	require.NoError(t, err)
	assert.Equal(t, roomID, *resp.RoomID)
	assert.Equal(t, types.TimeString("11:00"), *resp.OpenTime)
	repo.AssertExpectations(t)
}

func TestService_Upsert_Validation(t *testing.T) {
	roomID := uuid.New()

	tests := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{name: "empty", req: &models.UpdateConfigRequest{}},
		{name: "tax above 100", req: &models.UpdateConfigRequest{TaxRate: ptr.Ptr(decimal.NewFromInt(101))}},
		{name: "three decimals", req: &models.UpdateConfigRequest{TaxRate: ptr.Ptr(decimal.RequireFromString("11.125"))}},
		{name: "slot too small", req: &models.UpdateConfigRequest{PublicSlotMinutes: ptr.Ptr(1)}},
		{name: "negative tolerance", req: &models.UpdateConfigRequest{SettlementTolerance: ptr.Ptr(int64(-1))}},
		{name: "open after inherited close", req: &models.UpdateConfigRequest{OpenTime: ptr.Ptr(types.TimeString("22:00"))}},
		{name: "unknown mode", req: &models.UpdateConfigRequest{TaxMode: ptr.Ptr(domain.TaxMode("VAT"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockConfigRepo{}
			repo.On("GetByRoom", mock.Anything, mock.Anything).Return(nil, configRepo.ErrConfigNotFound)
			repo.On("GetHierarchy", mock.Anything, mock.Anything).Return(nil, nil)

			svc := NewService(repo, &mockRoomRepo{}, domain.DefaultResolvedConfig(), nopLogger{})

			_, err := svc.Upsert(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("unknown room", func(t *testing.T) {
		rooms := &mockRoomRepo{}
		rooms.On("GetByID", mock.Anything, roomID).Return(nil, roomRepo.ErrRoomNotFound)

		svc := NewService(&mockConfigRepo{}, rooms, domain.DefaultResolvedConfig(), nopLogger{})

		_, err := svc.Upsert(context.Background(), &models.UpdateConfigRequest{RoomID: &roomID, PublicSlotMinutes: ptr.Ptr(15)})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
