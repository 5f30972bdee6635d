package get_booking_invoice

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// Request модель запроса счета по бронированию
type Request struct {
	BookingID uuid.UUID
}

// Response счет: итоги, признак оплаты и история проводок
type Response struct {
	Booking      *domain.Booking
	Totals       ledger.Totals
	Settled      bool  // остаток не превышает допуск
	Tolerance    int64 // допуск, с которым считался Settled
	Transactions []*domain.Transaction
}
