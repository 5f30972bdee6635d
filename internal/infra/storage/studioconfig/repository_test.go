package studioconfig

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

func TestRepository_GetHierarchy(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	roomID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(columns).
		AddRow(1, nil, "12.00", "NORMAL", "08:00:00", nil, 15, nil, nil, now, now).
		AddRow(2, roomID.String(), nil, nil, "10:00:00", "18:00:00", nil, nil, int64(500), now, now)

	mock.ExpectQuery(`SELECT .+ FROM studio_config WHERE \(room_id IS NULL OR room_id = \$1\) ORDER BY room_id NULLS FIRST`).
		WithArgs(roomID.String()).
		WillReturnRows(rows)

	levels, err := repo.GetHierarchy(context.Background(), &roomID)
	require.NoError(t, err)
	require.Len(t, levels, 2)

	studio, room := levels[0], levels[1]
	assert.True(t, studio.IsStudioWide())
	require.NotNil(t, studio.TaxRate)
	assert.True(t, studio.TaxRate.Equal(decimal.NewFromInt(12)))
	require.NotNil(t, studio.TaxMode)
	assert.Equal(t, domain.TaxModeNormal, *studio.TaxMode)
	assert.Nil(t, studio.CloseTime)

	assert.True(t, room.IsRoomOverride())
	assert.Equal(t, roomID, *room.RoomID)
	assert.Equal(t, types.TimeString("18:00"), *room.CloseTime)
	assert.Equal(t, int64(500), *room.SettlementTolerance)

	resolved := domain.ResolveConfig(domain.DefaultResolvedConfig(), levels...)
	assert.Equal(t, types.TimeString("10:00"), resolved.OpenTime)
	assert.Equal(t, 15, resolved.PublicSlotMinutes)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByRoom_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))

	mock.ExpectQuery(`SELECT .+ FROM studio_config WHERE room_id IS NULL`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.GetByRoom(context.Background(), nil)
	assert.ErrorIs(t, err, ErrConfigNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
