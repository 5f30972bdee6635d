package studiopackage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"name",
	"duration_hours",
	"base_price",
	"features",
	"cost_breakdown",
	"archived",
	"created_at",
	"updated_at",
}

// Repository репозиторий пакетов услуг
// features и cost_breakdown хранятся в JSONB
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пакет
func (r *Repository) Create(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	features, err := json.Marshal(nonNil(pkg.Features))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode features: %v", ErrBuildQuery, err)
	}
	costs, err := json.Marshal(nonNil(pkg.CostBreakdown))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode cost breakdown: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("packages").
		Columns(columns[:len(columns)-2]...).
		Values(
			pkg.ID,
			pkg.Name,
			pkg.DurationHours,
			pkg.BasePrice,
			string(features),
			string(costs),
			pkg.Archived,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	return pkg, nil
}

// GetByID получает пакет по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	pkg, err := scanPackage(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan package: %v", ErrScanRow, err)
	}

	return pkg, nil
}

// List возвращает пакеты, упорядоченные по имени
func (r *Repository) List(ctx context.Context, includeArchived bool) ([]*domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From("packages")
	if !includeArchived {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"archived": false})
	}

	query, args, err := selectBuilder.OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packages := make([]*domain.Package, 0)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}

// Delete удаляет пакет
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrPackageNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPackage(row rowScanner) (*domain.Package, error) {
	var pkg domain.Package
	var features, costs []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.DurationHours,
		&pkg.BasePrice,
		&features,
		&costs,
		&pkg.Archived,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(features) > 0 {
		if err := json.Unmarshal(features, &pkg.Features); err != nil {
			return nil, fmt.Errorf("features: %w", err)
		}
	}
	if len(costs) > 0 {
		if err := json.Unmarshal(costs, &pkg.CostBreakdown); err != nil {
			return nil, fmt.Errorf("cost_breakdown: %w", err)
		}
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	return &pkg, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
