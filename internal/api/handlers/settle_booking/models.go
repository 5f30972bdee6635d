package settle_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
	settleBooking "github.com/m04kA/SMC-StudioService/internal/usecase/settle_booking"
)

// SettlementRequest HTTP request model
type SettlementRequest struct {
	AccountID uuid.UUID `json:"accountId" validate:"required"`
	Amount    int64     `json:"amount" validate:"gt=0"`
	Mode      string    `json:"mode" validate:"required,oneof=PAYMENT REFUND payment refund"`
}

// SettlementResponse HTTP response model
type SettlementResponse struct {
	Booking     *models.BookingResponse   `json:"booking"`
	Account     *handlers.AccountView     `json:"account"`
	Transaction *handlers.TransactionView `json:"transaction"`
	Totals      handlers.TotalsView       `json:"totals"`
	Settled     bool                      `json:"settled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *settleBooking.Response) *SettlementResponse {
	return &SettlementResponse{
		Booking:     models.FromDomainBooking(resp.Booking),
		Account:     handlers.NewAccountView(resp.Account),
		Transaction: handlers.NewTransactionView(resp.Transaction),
		Totals:      handlers.NewTotalsView(resp.Totals),
		Settled:     resp.Settled,
	}
}
