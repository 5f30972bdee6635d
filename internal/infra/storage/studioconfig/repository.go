package studioconfig

import (
	"context"
	"database/sql"
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
	"room_id",
	"tax_rate",
	"tax_mode",
	"open_time",
	"close_time",
	"public_slot_minutes",
	"internal_slot_minutes",
	"settlement_tolerance",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации студии
// Хранит две ступени иерархии: студийную запись (room_id IS NULL) и переопределения залов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает конфигурацию
func (r *Repository) Create(ctx context.Context, config *domain.StudioConfig) (*domain.StudioConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("studio_config").
		Columns(
			"room_id",
			"tax_rate",
			"tax_mode",
			"open_time",
			"close_time",
			"public_slot_minutes",
			"internal_slot_minutes",
			"settlement_tolerance",
		).
		Values(
			config.RoomID,
			config.TaxRate,
			config.TaxMode,
			config.OpenTime,
			config.CloseTime,
			config.PublicSlotMinutes,
			config.InternalSlotMinutes,
			config.SettlementTolerance,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByRoom получает конфигурацию ровно одного уровня
// roomID == nil - студийная конфигурация, иначе переопределение зала
func (r *Repository) GetByRoom(ctx context.Context, roomID *uuid.UUID) (*domain.StudioConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Eq{"room_id": nil}
	if roomID != nil {
		where = squirrel.Eq{"room_id": *roomID}
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("studio_config").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - build select query: %v", ErrBuildQuery, err)
	}

	config, err := scanConfig(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRoom - scan config: %v", ErrScanRow, err)
	}

	return config, nil
}

// GetHierarchy получает все уровни конфигурации, применимые к залу
// Порядок результата: студийная запись, затем запись зала.
// Отсутствующие уровни пропускаются, пустой результат не считается ошибкой.
func (r *Repository) GetHierarchy(ctx context.Context, roomID *uuid.UUID) ([]*domain.StudioConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.Or{squirrel.Eq{"room_id": nil}}
	if roomID != nil {
		where = append(where, squirrel.Eq{"room_id": *roomID})
	}

	query, args, err := psqlbuilder.Select(columns...).
		From("studio_config").
		Where(where).
		OrderBy("room_id NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetHierarchy", query, args)
}

// GetAll получает все конфигурации (студийную и переопределения залов)
func (r *Repository) GetAll(ctx context.Context) ([]*domain.StudioConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("studio_config").
		OrderBy("room_id NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "GetAll", query, args)
}

// Update обновляет конфигурацию
func (r *Repository) Update(ctx context.Context, id int64, config *domain.StudioConfig) (*domain.StudioConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("studio_config").
		Set("tax_rate", config.TaxRate).
		Set("tax_mode", config.TaxMode).
		Set("open_time", config.OpenTime).
		Set("close_time", config.CloseTime).
		Set("public_slot_minutes", config.PublicSlotMinutes).
		Set("internal_slot_minutes", config.InternalSlotMinutes).
		Set("settlement_tolerance", config.SettlementTolerance).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.ID = id
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// DeleteByRoom удаляет переопределение зала
func (r *Repository) DeleteByRoom(ctx context.Context, roomID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("studio_config").
		Where(squirrel.Eq{"room_id": roomID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByRoom - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByRoom - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.StudioConfig, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	configs := make([]*domain.StudioConfig, 0)
	for rows.Next() {
		config, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return configs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.StudioConfig, error) {
	var config domain.StudioConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.RoomID,
		&config.TaxRate,
		&config.TaxMode,
		&config.OpenTime,
		&config.CloseTime,
		&config.PublicSlotMinutes,
		&config.InternalSlotMinutes,
		&config.SettlementTolerance,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
