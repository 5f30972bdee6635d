package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"client_id",
	"client_name",
	"package_id",
	"package_name",
	"room_id",
	"booking_date",
	"start_time",
	"duration_hours",
	"status",
	"price",
	"line_items",
	"discount",
	"paid_amount",
	"tax_rate_snapshot",
	"cost_snapshot",
	"primary_staff_id",
	"secondary_staff_id",
	"tasks",
	"activity_log",
	"notes",
	"version",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
// Вложенные массивы (позиции, задачи, журнал, себестоимость) хранятся в JSONB
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	docs, err := encodeDocuments(booking)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(columns[:len(columns)-2]...).
		Values(
			booking.ID,
			booking.ClientID,
			booking.ClientName,
			booking.PackageID,
			booking.PackageName,
			booking.RoomID,
			booking.Date,
			booking.StartTime,
			booking.DurationHours,
			booking.Status,
			booking.Price,
			docs.lineItems,
			docs.discount,
			booking.PaidAmount,
			nullDecimal(booking.TaxRateSnapshot),
			docs.costSnapshot,
			booking.PrimaryStaffID,
			booking.SecondaryStaffID,
			docs.tasks,
			docs.activityLog,
			booking.Notes,
			booking.Version,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией
// Без явных статусов отмененные исключаются, если не задан IncludeCancelled.
// Для одного дня внутри транзакции строки блокируются (FOR UPDATE),
// это закрывает гонку "проверил пересечения - записал".
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From("bookings")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.PackageID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"package_id": *filter.PackageID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"primary_staff_id": *filter.StaffID},
			squirrel.Eq{"secondary_staff_id": *filter.StaffID},
		})
	}

	switch {
	case len(filter.Statuses) > 0:
		selectBuilder = selectBuilder.Where("status = ANY(?)", pq.Array(statusStrings(filter.Statuses)))
	case filter.OnlyLive:
		selectBuilder = selectBuilder.Where("status = ANY(?)", pq.Array(statusStrings(domain.LiveStatuses)))
	case !filter.IncludeCancelled:
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.IsSingleDay() {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && filter.IsSingleDay() {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Update перезаписывает изменяемые поля бронирования
// Запись проходит только если версия в БД совпадает с booking.Version,
// после успешной записи версия увеличивается на единицу
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	docs, err := encodeDocuments(booking)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("client_id", booking.ClientID).
		Set("client_name", booking.ClientName).
		Set("room_id", booking.RoomID).
		Set("booking_date", booking.Date).
		Set("start_time", booking.StartTime).
		Set("duration_hours", booking.DurationHours).
		Set("status", booking.Status).
		Set("price", booking.Price).
		Set("line_items", docs.lineItems).
		Set("discount", docs.discount).
		Set("paid_amount", booking.PaidAmount).
		Set("primary_staff_id", booking.PrimaryStaffID).
		Set("secondary_staff_id", booking.SecondaryStaffID).
		Set("tasks", docs.tasks).
		Set("activity_log", docs.activityLog).
		Set("notes", booking.Notes).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID, "version": booking.Version}).
		Suffix("RETURNING version, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.Version, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVersionConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Delete удаляет бронирование (административное удаление документа)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
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
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// documents JSONB поля бронирования, передаются в БД строками
type documents struct {
	lineItems    string
	discount     *string
	costSnapshot string
	tasks        string
	activityLog  string
}

func encodeDocuments(b *domain.Booking) (*documents, error) {
	var (
		docs documents
		err  error
	)

	if docs.lineItems, err = marshalList(b.LineItems); err != nil {
		return nil, fmt.Errorf("line_items: %v", err)
	}
	if docs.costSnapshot, err = marshalList(b.CostSnapshot); err != nil {
		return nil, fmt.Errorf("cost_snapshot: %v", err)
	}
	if docs.tasks, err = marshalList(b.Tasks); err != nil {
		return nil, fmt.Errorf("tasks: %v", err)
	}
	if docs.activityLog, err = marshalList(b.ActivityLog); err != nil {
		return nil, fmt.Errorf("activity_log: %v", err)
	}
	if b.Discount != nil {
		raw, err := json.Marshal(b.Discount)
		if err != nil {
			return nil, fmt.Errorf("discount: %v", err)
		}
		discount := string(raw)
		docs.discount = &discount
	}

	return &docs, nil
}

// marshalList кодирует nil-слайс как пустой массив
func marshalList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                                           domain.Booking
		lineItems, discount, costSnapshot, tasks, journal []byte
		taxRate                                           decimal.NullDecimal
		createdAt, updatedAt                              sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ClientName,
		&booking.PackageID,
		&booking.PackageName,
		&booking.RoomID,
		&booking.Date,
		&booking.StartTime,
		&booking.DurationHours,
		&booking.Status,
		&booking.Price,
		&lineItems,
		&discount,
		&booking.PaidAmount,
		&taxRate,
		&costSnapshot,
		&booking.PrimaryStaffID,
		&booking.SecondaryStaffID,
		&tasks,
		&journal,
		&booking.Notes,
		&booking.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalIfPresent(lineItems, &booking.LineItems); err != nil {
		return nil, fmt.Errorf("line_items: %w", err)
	}
	if err := unmarshalIfPresent(costSnapshot, &booking.CostSnapshot); err != nil {
		return nil, fmt.Errorf("cost_snapshot: %w", err)
	}
	if err := unmarshalIfPresent(tasks, &booking.Tasks); err != nil {
		return nil, fmt.Errorf("tasks: %w", err)
	}
	if err := unmarshalIfPresent(journal, &booking.ActivityLog); err != nil {
		return nil, fmt.Errorf("activity_log: %w", err)
	}
	if len(discount) > 0 {
		booking.Discount = &domain.Discount{}
		if err := json.Unmarshal(discount, booking.Discount); err != nil {
			return nil, fmt.Errorf("discount: %w", err)
		}
	}

	if taxRate.Valid {
		rate := taxRate.Decimal
		booking.TaxRateSnapshot = &rate
	}
	booking.Date = booking.Date.UTC()
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func unmarshalIfPresent(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
