package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Request модель запроса на создание бронирования из мастера или быстрой брони
type Request struct {
	Actor            uuid.UUID  // Кто создает бронь
	ClientID         uuid.UUID  // ID клиента
	PackageID        *uuid.UUID // nil - быстрая бронь без пакета
	RoomID           uuid.UUID  // ID зала
	Date             time.Time  // Дата бронирования (без времени)
	StartTime        types.TimeString
	DurationHours    *int   // nil - длительность пакета
	Price            *int64 // nil - базовая цена пакета
	Status           domain.BookingStatus
	LineItems        []domain.LineItem
	Discount         *domain.Discount
	PrimaryStaffID   *uuid.UUID
	SecondaryStaffID *uuid.UUID
	Notes            *string

	// Force создать бронь, даже если слот пересекается с другими
	Force bool
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Totals  ledger.Totals

	// OverriddenConflicts брони, пересечение с которыми проигнорировано по Force
	OverriddenConflicts []uuid.UUID
}
