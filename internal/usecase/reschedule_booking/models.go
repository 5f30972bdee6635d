package reschedule_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Request модель запроса на перенос бронирования
// nil-поля не меняются
type Request struct {
	Actor         uuid.UUID
	BookingID     uuid.UUID
	Date          *time.Time
	StartTime     *types.TimeString
	DurationHours *int
	RoomID        *uuid.UUID

	// ExpectedVersion версия, которую видел клиент (optimistic locking)
	ExpectedVersion *int

	// ForceWithoutValidation перенос перетаскиванием в календаре без проверки пересечений
	ForceWithoutValidation bool
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	Booking             *domain.Booking
	OverriddenConflicts []uuid.UUID
}
