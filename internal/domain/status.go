package domain

import (
	"fmt"
	"strings"
)

// statusOrder порядок статусов в производственном цикле
// CANCELLED не участвует в упорядочивании
var statusOrder = map[BookingStatus]int{
	StatusInquiry:   0,
	StatusBooked:    1,
	StatusShooting:  2,
	StatusCulling:   3,
	StatusEditing:   4,
	StatusReview:    5,
	StatusCompleted: 6,
}

// AllStatuses все статусы в порядке цикла
var AllStatuses = []BookingStatus{
	StatusInquiry,
	StatusBooked,
	StatusShooting,
	StatusCulling,
	StatusEditing,
	StatusReview,
	StatusCompleted,
	StatusCancelled,
}

// InitialStatuses статусы, в которых может быть создано бронирование
var InitialStatuses = []BookingStatus{StatusInquiry, StatusBooked}

// IsValid returns true if the status is one of the known workflow states
func (s BookingStatus) IsValid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusOrder[s]
	return ok
}

// IsTerminal returns true for COMPLETED and CANCELLED
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsInitial returns true for INQUIRY and BOOKED
func (s BookingStatus) IsInitial() bool {
	return s == StatusInquiry || s == StatusBooked
}

// IsForwardFrom returns true if s comes strictly later in the cycle than prev
func (s BookingStatus) IsForwardFrom(prev BookingStatus) bool {
	next, ok1 := statusOrder[s]
	cur, ok2 := statusOrder[prev]
	return ok1 && ok2 && next > cur
}

// ParseBookingStatus разбирает статус из строки (регистр не важен)
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown booking status %q", ErrValidation, raw)
	}
	return status, nil
}
