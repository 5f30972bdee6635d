package account

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
)

func TestRepository_GetByID_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db, nil)
	repo := NewRepository(wrapped)
	id := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, name, type, balance, version, created_at, updated_at FROM accounts WHERE id = \$1 FOR UPDATE`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), "BCA", "BANK", int64(250_000), 4, now, now))
	mock.ExpectRollback()

	tx, err := wrapped.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	got, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), id)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, domain.AccountBank, got.Type)
	assert.Equal(t, int64(250_000), got.Balance)
	assert.Equal(t, 4, got.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(dbmetrics.Wrap(db, nil))
	acc := &domain.Account{ID: uuid.New(), Balance: 10, Version: 4}

	t.Run("version bumped", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE accounts SET balance = \$1, version = version \+ 1, updated_at = NOW\(\) WHERE id = \$2 AND version = \$3 RETURNING version, updated_at`).
			WithArgs(int64(10), acc.ID.String(), 4).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(5, time.Now()))

		got, err := repo.UpdateBalance(context.Background(), acc)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Version)
	})

	t.Run("stale version", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE accounts SET`).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}))

		_, err := repo.UpdateBalance(context.Background(), &domain.Account{ID: uuid.New(), Version: 1})
		assert.ErrorIs(t, err, domain.ErrVersionConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
