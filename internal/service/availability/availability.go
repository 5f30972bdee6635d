package availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Candidate предлагаемый интервал бронирования
type Candidate struct {
	Date          time.Time
	RoomID        uuid.UUID
	StartMinutes  int
	DurationHours int
}

// EndMinutes конец интервала в минутах от полуночи
func (c Candidate) EndMinutes() int {
	return c.StartMinutes + c.DurationHours*60
}

// CandidateFromBooking строит кандидата из существующей брони
func CandidateFromBooking(b *domain.Booking) Candidate {
	return Candidate{
		Date:          b.Date,
		RoomID:        b.RoomID,
		StartMinutes:  b.StartMinutes(),
		DurationHours: b.DurationHours,
	}
}

// SlotQuery параметры перечисления слотов
type SlotQuery struct {
	Date               time.Time
	RoomID             uuid.UUID
	DurationHours      int
	OperatingStart     types.TimeString
	OperatingEnd       types.TimeString
	GranularityMinutes int
}

// Slot кандидат на бронирование в сетке дня
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString // пусто, если слот выходит за сутки
	Available bool
}

// HasConflict проверяет пересечение кандидата с существующими бронями
// Интервалы полуоткрытые [s, e): бронь до 12:00 не конфликтует с бронью с 12:00.
// Учитываются только брони того же дня и зала, не отмененные и не excludeID.
func HasConflict(candidate Candidate, existing []*domain.Booking, excludeID *uuid.UUID) bool {
	for _, b := range existing {
		if blocks(candidate, b, excludeID) {
			return true
		}
	}
	return false
}

// Conflicts возвращает все брони, пересекающиеся с кандидатом (в исходном порядке)
func Conflicts(candidate Candidate, existing []*domain.Booking, excludeID *uuid.UUID) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range existing {
		if blocks(candidate, b, excludeID) {
			result = append(result, b)
		}
	}
	return result
}

// ValidateCandidate проверяет корректность кандидата
func ValidateCandidate(c Candidate) error {
	if c.DurationHours < domain.MinDurationHours {
		return fmt.Errorf("%w: duration must be at least %d hour", domain.ErrValidation, domain.MinDurationHours)
	}
	if c.StartMinutes < 0 || c.EndMinutes() > types.MinutesInDay {
		return fmt.Errorf("%w: booking must start and end within the same day", domain.ErrValidation)
	}
	return nil
}

// ListSlots перечисляет слоты дня с фиксированным шагом от начала до конца рабочего времени
// Слот недоступен, если заканчивается позже закрытия или пересекается с бронью.
// Результат упорядочен по времени, функция не хранит состояния.
func ListSlots(q SlotQuery, existing []*domain.Booking) ([]Slot, error) {
	if q.DurationHours < domain.MinDurationHours {
		return nil, fmt.Errorf("%w: duration must be at least %d hour", domain.ErrValidation, domain.MinDurationHours)
	}
	if q.GranularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive", domain.ErrValidation)
	}
	if err := q.OperatingStart.Validate(); err != nil {
		return nil, fmt.Errorf("%w: operating start: %v", domain.ErrValidation, err)
	}
	if err := q.OperatingEnd.Validate(); err != nil {
		return nil, fmt.Errorf("%w: operating end: %v", domain.ErrValidation, err)
	}

	open := q.OperatingStart.Minutes()
	closing := q.OperatingEnd.Minutes()
	if open >= closing {
		return nil, fmt.Errorf("%w: operating start %s must be before end %s",
			domain.ErrValidation, q.OperatingStart, q.OperatingEnd)
	}

	slots := make([]Slot, 0, (closing-open)/q.GranularityMinutes+1)
	for start := open; start < closing; start += q.GranularityMinutes {
		candidate := Candidate{
			Date:          q.Date,
			RoomID:        q.RoomID,
			StartMinutes:  start,
			DurationHours: q.DurationHours,
		}

		startTime, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		slot := Slot{StartTime: startTime}
		if end, err := types.NewTimeStringFromMinutes(candidate.EndMinutes()); err == nil {
			slot.EndTime = end
		}

		slot.Available = candidate.EndMinutes() <= closing && !HasConflict(candidate, existing, nil)
		slots = append(slots, slot)
	}

	return slots, nil
}

// AvailableOnly оставляет только доступные слоты
func AvailableOnly(slots []Slot) []Slot {
	result := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			result = append(result, s)
		}
	}
	return result
}

func blocks(candidate Candidate, b *domain.Booking, excludeID *uuid.UUID) bool {
	if b == nil || b.IsCancelled() {
		return false
	}
	if excludeID != nil && b.ID == *excludeID {
		return false
	}
	if b.RoomID != candidate.RoomID || !sameDay(b.Date, candidate.Date) {
		return false
	}

	// Пересечение полуоткрытых интервалов: s1 < e2 && e1 > s2
	return candidate.StartMinutes < b.EndMinutes() && candidate.EndMinutes() > b.StartMinutes()
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
