package automation

import (
	"context"
	"database/sql"
	"encoding/json"
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
	"trigger_status",
	"trigger_package_id",
	"task_templates",
	"assignee_id",
	"position",
	"created_at",
}

// Repository репозиторий правил автоматизации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет правило
// Если Position не задан, правило встает в конец списка
func (r *Repository) Create(ctx context.Context, rule *domain.AutomationRule) (*domain.AutomationRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	templates := rule.TaskTemplates
	if templates == nil {
		templates = []string{}
	}
	rawTemplates, err := json.Marshal(templates)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - encode task templates: %v", ErrBuildQuery, err)
	}

	var position interface{} = rule.Position
	if rule.Position <= 0 {
		position = squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM automation_rules)")
	}

	query, args, err := psqlbuilder.Insert("automation_rules").
		Columns(columns[:len(columns)-1]...).
		Values(
			rule.ID,
			rule.Name,
			rule.TriggerStatus,
			rule.TriggerPackageID,
			string(rawTemplates),
			rule.AssigneeID,
			position,
		).
		Suffix("RETURNING position, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.Position, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time

	return rule, nil
}

// List возвращает правила в порядке конфигурации (position ASC)
// Порядок важен: при смене статуса срабатывает первое подходящее правило
func (r *Repository) List(ctx context.Context) ([]domain.AutomationRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("automation_rules").
		OrderBy("position ASC", "created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.AutomationRule, 0)
	for rows.Next() {
		var rule domain.AutomationRule
		var templates []byte
		var createdAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.TriggerStatus,
			&rule.TriggerPackageID,
			&templates,
			&rule.AssigneeID,
			&rule.Position,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		if len(templates) > 0 {
			if err := json.Unmarshal(templates, &rule.TaskTemplates); err != nil {
				return nil, fmt.Errorf("%w: List - decode task templates: %v", ErrScanRow, err)
			}
		}

		rule.CreatedAt = createdAt.Time
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Delete удаляет правило
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("automation_rules").
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
		return ErrRuleNotFound
	}

	return nil
}
