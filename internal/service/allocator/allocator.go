package allocator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/availability"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Действия журнала
const (
	ActionCreated     = "created"
	ActionRescheduled = "rescheduled"
)

// Draft черновик нового бронирования
type Draft struct {
	ClientID         uuid.UUID
	ClientName       string
	RoomID           uuid.UUID
	Date             time.Time
	StartTime        types.TimeString
	DurationHours    *int   // nil - длительность пакета
	Price            *int64 // nil - базовая цена пакета
	Status           domain.BookingStatus
	LineItems        []domain.LineItem
	Discount         *domain.Discount
	PrimaryStaffID   *uuid.UUID
	SecondaryStaffID *uuid.UUID
	Notes            *string

	// QuickBooking быстрая бронь без пакета, допустима только с нулевой ценой
	QuickBooking bool
}

// Patch частичное изменение расписания брони
type Patch struct {
	Date          *time.Time
	StartTime     *types.TimeString
	DurationHours *int
	RoomID        *uuid.UUID
}

// IsEmpty returns true if the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Date == nil && p.StartTime == nil && p.DurationHours == nil && p.RoomID == nil
}

// Create собирает новое бронирование из черновика и пакета
// Снимает ставку налога студии и себестоимость пакета в неизменяемые поля брони.
func Create(draft Draft, pkg *domain.Package, cfg domain.ResolvedConfig, actor uuid.UUID, now time.Time) (*domain.Booking, error) {
	if err := validateDraft(draft, pkg); err != nil {
		return nil, err
	}

	status := draft.Status
	if status == "" {
		status = domain.StatusBooked
	}

	booking := &domain.Booking{
		ID:               uuid.New(),
		ClientID:         draft.ClientID,
		ClientName:       draft.ClientName,
		RoomID:           draft.RoomID,
		Date:             truncateDay(draft.Date),
		StartTime:        draft.StartTime,
		Status:           status,
		LineItems:        append([]domain.LineItem(nil), draft.LineItems...),
		PrimaryStaffID:   draft.PrimaryStaffID,
		SecondaryStaffID: draft.SecondaryStaffID,
		Notes:            draft.Notes,
		Tasks:            []domain.Task{},
		ActivityLog:      []domain.ActivityEntry{},
		CostSnapshot:     []domain.CostItem{},
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if draft.Discount != nil {
		d := *draft.Discount
		booking.Discount = &d
	}

	taxRate := cfg.TaxRate
	booking.TaxRateSnapshot = &taxRate

	if pkg != nil {
		id := pkg.ID
		booking.PackageID = &id
		booking.PackageName = pkg.Name
		booking.Price = pkg.BasePrice
		booking.DurationHours = pkg.DurationHours
		booking.CostSnapshot = append(booking.CostSnapshot, pkg.CostBreakdown...)
	}
	if draft.Price != nil {
		booking.Price = *draft.Price
	}
	if draft.DurationHours != nil {
		booking.DurationHours = *draft.DurationHours
	}

	if err := availability.ValidateCandidate(availability.CandidateFromBooking(booking)); err != nil {
		return nil, err
	}

	booking.AppendActivity(actor, ActionCreated, fmt.Sprintf("%s %s %s (%dh), status %s",
		describePackage(booking), booking.Date.Format(domain.DateFormat), booking.StartTime,
		booking.DurationHours, booking.Status), now)

	return booking, nil
}

// Reschedule применяет частичное изменение даты, времени, длительности и зала
// Доступность не проверяет: решение о проверке принимает вызывающий.
func Reschedule(booking *domain.Booking, patch Patch, actor uuid.UUID, now time.Time) (*domain.Booking, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to reschedule", domain.ErrValidation)
	}
	if patch.DurationHours != nil && *patch.DurationHours < domain.MinDurationHours {
		return nil, fmt.Errorf("%w: duration must be at least %d hour", domain.ErrValidation, domain.MinDurationHours)
	}
	if patch.StartTime != nil {
		if err := patch.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
	}

	updated := booking.Clone()
	changes := make([]string, 0, 4)

	if patch.Date != nil {
		date := truncateDay(*patch.Date)
		if !date.Equal(updated.Date) {
			changes = append(changes, fmt.Sprintf("date %s -> %s",
				updated.Date.Format(domain.DateFormat), date.Format(domain.DateFormat)))
			updated.Date = date
		}
	}
	if patch.StartTime != nil && *patch.StartTime != updated.StartTime {
		changes = append(changes, fmt.Sprintf("start %s -> %s", updated.StartTime, *patch.StartTime))
		updated.StartTime = *patch.StartTime
	}
	if patch.DurationHours != nil && *patch.DurationHours != updated.DurationHours {
		changes = append(changes, fmt.Sprintf("duration %dh -> %dh", updated.DurationHours, *patch.DurationHours))
		updated.DurationHours = *patch.DurationHours
	}
	if patch.RoomID != nil && *patch.RoomID != updated.RoomID {
		changes = append(changes, fmt.Sprintf("room %s -> %s", updated.RoomID, *patch.RoomID))
		updated.RoomID = *patch.RoomID
	}

	if err := availability.ValidateCandidate(availability.CandidateFromBooking(updated)); err != nil {
		return nil, err
	}

	details := "no changes"
	if len(changes) > 0 {
		details = strings.Join(changes, "; ")
	}
	updated.AppendActivity(actor, ActionRescheduled, details, now)
	updated.UpdatedAt = now

	return updated, nil
}

func validateDraft(draft Draft, pkg *domain.Package) error {
	if draft.ClientID == uuid.Nil {
		return fmt.Errorf("%w: client is required", domain.ErrValidation)
	}
	if draft.RoomID == uuid.Nil {
		return fmt.Errorf("%w: room is required", domain.ErrValidation)
	}
	if draft.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if err := draft.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", domain.ErrValidation, err)
	}
	if draft.Status != "" && !draft.Status.IsInitial() {
		return fmt.Errorf("%w: booking can only be created as %s or %s",
			domain.ErrValidation, domain.StatusInquiry, domain.StatusBooked)
	}
	if draft.Price != nil && *draft.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if pkg == nil {
		if !draft.QuickBooking || draft.Price == nil || *draft.Price != 0 {
			return fmt.Errorf("%w: package is required unless this is a zero-price quick booking", domain.ErrValidation)
		}
		if draft.DurationHours == nil {
			return fmt.Errorf("%w: duration is required for a quick booking", domain.ErrValidation)
		}
	} else if pkg.Archived {
		return fmt.Errorf("%w: package %s is archived", domain.ErrValidation, pkg.Name)
	}
	if len(draft.LineItems) > domain.MaxLineItems {
		return fmt.Errorf("%w: too many line items", domain.ErrValidation)
	}
	for _, item := range draft.LineItems {
		if item.Quantity <= 0 || item.UnitPrice < 0 || item.Cost < 0 {
			return fmt.Errorf("%w: line item %q has invalid quantity or amounts", domain.ErrValidation, item.Description)
		}
	}
	if draft.Discount != nil {
		if err := ValidateDiscount(*draft.Discount); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDiscount проверяет тип и значение скидки
func ValidateDiscount(d domain.Discount) error {
	switch d.Type {
	case domain.DiscountPercent:
		if d.Value.IsNegative() || d.Value.GreaterThan(decimal.NewFromInt(domain.MaxDiscountPercent)) {
			return fmt.Errorf("%w: percent discount must be within 0..100", domain.ErrValidation)
		}
	case domain.DiscountFixed:
		if d.Value.IsNegative() {
			return fmt.Errorf("%w: fixed discount must not be negative", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", domain.ErrValidation, d.Type)
	}
	return nil
}

func describePackage(b *domain.Booking) string {
	if b.PackageName == "" {
		return "quick booking"
	}
	return b.PackageName
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
