package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Таксономия ошибок ядра. Все ошибки локальные и восстановимые,
// решение повторить или отменить операцию принимает вызывающая сторона.
var (
	// ErrValidation некорректные входные данные, состояние не менялось
	ErrValidation = errors.New("validation error")

	// ErrConflict слот пересекается с существующей бронью
	ErrConflict = errors.New("booking conflict")

	// ErrInsufficientFunds на счете недостаточно средств для возврата
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverpayment сумма платежа или возврата вне допустимого диапазона
	ErrOverpayment = errors.New("amount outside permitted range")

	// ErrIntegrity удаление сущности, от которой зависят живые брони
	ErrIntegrity = errors.New("integrity violation")

	// ErrPersistence хранилище отклонило запись
	ErrPersistence = errors.New("persistence error")

	// ErrVersionConflict документ был изменен конкурентно
	ErrVersionConflict = errors.New("version conflict")

	// ErrNotFound сущность не найдена
	ErrNotFound = errors.New("not found")
)

// ConflictError пересечение с конкретными бронями
type ConflictError struct {
	RoomID     uuid.UUID
	BookingIDs []uuid.UUID
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.BookingIDs))
	for i, id := range e.BookingIDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("%s: room %s overlaps bookings [%s]", ErrConflict, e.RoomID, strings.Join(ids, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError собирает ошибку из списка пересекающихся броней
func NewConflictError(roomID uuid.UUID, conflicts []*Booking) *ConflictError {
	ids := make([]uuid.UUID, len(conflicts))
	for i, b := range conflicts {
		ids[i] = b.ID
	}
	return &ConflictError{RoomID: roomID, BookingIDs: ids}
}

// IntegrityError удаление заблокировано зависимыми документами
type IntegrityError struct {
	Entity     string
	ID         uuid.UUID
	Dependents []uuid.UUID
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s %s has %d live dependents", ErrIntegrity, e.Entity, e.ID, len(e.Dependents))
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// IsValidationError проверяет, является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflictError проверяет, является ли ошибка конфликтом (слот или версия)
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrVersionConflict)
}

// IsSettlementRangeError проверяет ошибки суммы проведения
func IsSettlementRangeError(err error) bool {
	return errors.Is(err, ErrOverpayment) || errors.Is(err, ErrInsufficientFunds)
}
