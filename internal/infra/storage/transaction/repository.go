package transaction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"type",
	"category",
	"amount",
	"account_id",
	"to_account_id",
	"booking_id",
	"staff_id",
	"description",
	"date",
	"status",
	"created_by",
	"created_at",
}

// Repository журнал проводок
// Проводки только добавляются: ни обновления, ни удаления журнал не поддерживает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория проводок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет проводку в журнал
func (r *Repository) Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("transactions").
		Columns(columns[:len(columns)-1]...).
		Values(
			txn.ID,
			txn.Type,
			txn.Category,
			txn.Amount,
			txn.AccountID,
			txn.ToAccountID,
			txn.BookingID,
			txn.StaffID,
			txn.Description,
			txn.Date,
			txn.Status,
			txn.CreatedBy,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	txn.CreatedAt = createdAt.Time

	return txn, nil
}

// List возвращает проводки по фильтру, новые первыми
// AccountID совпадает как со счетом-источником, так и со счетом-получателем
func (r *Repository) List(ctx context.Context, filter domain.TransactionsFilter) ([]*domain.Transaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From("transactions")

	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.AccountID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"account_id": *filter.AccountID},
			squirrel.Eq{"to_account_id": *filter.AccountID},
		})
	}
	if filter.BookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_id": *filter.BookingID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"date": *filter.To})
	}

	query, args, err := selectBuilder.OrderBy("date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	txns := make([]*domain.Transaction, 0)
	for rows.Next() {
		var txn domain.Transaction
		var createdAt sql.NullTime

		err := rows.Scan(
			&txn.ID,
			&txn.Type,
			&txn.Category,
			&txn.Amount,
			&txn.AccountID,
			&txn.ToAccountID,
			&txn.BookingID,
			&txn.StaffID,
			&txn.Description,
			&txn.Date,
			&txn.Status,
			&txn.CreatedBy,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}

		txn.CreatedAt = createdAt.Time
		txns = append(txns, &txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return txns, nil
}
