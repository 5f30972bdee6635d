package booking

import (
	"context"
	"database/sql"
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

func newRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	return NewRepository(wrapped), wrapped, mock
}

func bookingRow(id uuid.UUID, status domain.BookingStatus) *sqlmock.Rows {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(columns).AddRow(
		id.String(),
		uuid.New().String(),
		"Sari",
		nil,
		"",
		uuid.New().String(),
		time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		"10:00:00",
		2,
		string(status),
		int64(1_000_000),
		[]byte(`[{"description":"Session","quantity":1,"unitPrice":1000000,"cost":0}]`),
		[]byte(`{"type":"PERCENT","value":"10"}`),
		int64(0),
		"11.00",
		[]byte(`[]`),
		nil,
		nil,
		[]byte(`[]`),
		[]byte(`[]`),
		nil,
		3,
		now,
		now,
	)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepository(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1$`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(bookingRow(id, domain.StatusBooked))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, 3, got.Version)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, int64(1_000_000), got.LineItems[0].UnitPrice)
	require.NotNil(t, got.Discount)
	assert.True(t, got.Discount.Value.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, got.TaxRateSnapshot)
	assert.True(t, got.TaxRateSnapshot.Equal(decimal.NewFromInt(11)))
	assert.Nil(t, got.PackageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(`SELECT .+ FROM bookings`).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_ListLocksSingleDayInTransaction(t *testing.T) {
	repo, db, mock := newRepository(t)
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	roomID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE booking_date >= \$1 AND booking_date <= \$2 AND room_id = \$3 AND status <> \$4 ORDER BY start_time ASC FOR UPDATE`).
		WillReturnRows(bookingRow(uuid.New(), domain.StatusBooked))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	got, err := repo.List(ctx, domain.BookingsFilter{StartDate: &day, EndDate: &day, RoomID: &roomID})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListLiveByStaff(t *testing.T) {
	repo, _, mock := newRepository(t)
	staffID := uuid.New()

	mock.ExpectQuery(`WHERE \(primary_staff_id = \$1 OR secondary_staff_id = \$2\) AND status = ANY\(\$3\) ORDER BY booking_date DESC, start_time DESC$`).
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.List(context.Background(), domain.BookingsFilter{StaffID: &staffID, OnlyLive: true})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_VersionConflict(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectQuery(`UPDATE bookings SET .+ WHERE id = \$\d+ AND version = \$\d+ RETURNING version, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}))

	_, err := repo.Update(context.Background(), &domain.Booking{ID: uuid.New(), Version: 2})
	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_BumpsVersion(t *testing.T) {
	repo, _, mock := newRepository(t)
	now := time.Now()

	mock.ExpectQuery(`UPDATE bookings SET`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(3, now))

	got, err := repo.Update(context.Background(), &domain.Booking{ID: uuid.New(), Version: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, _, mock := newRepository(t)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
