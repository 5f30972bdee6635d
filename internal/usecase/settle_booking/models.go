package settle_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// Request модель запроса на проведение платежа или возврата
type Request struct {
	Actor     uuid.UUID
	BookingID uuid.UUID
	AccountID uuid.UUID
	Amount    int64  // минорные единицы, строго положительная
	Mode      string // PAYMENT или REFUND
}

// Response модель ответа: согласованные бронь, счет и проводка
type Response struct {
	Booking     *domain.Booking
	Account     *domain.Account
	Transaction *domain.Transaction
	Totals      ledger.Totals
	Settled     bool
}
