package get_booking_invoice

import (
	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
	getBookingInvoice "github.com/m04kA/SMC-StudioService/internal/usecase/get_booking_invoice"
)

// InvoiceResponse HTTP response model
type InvoiceResponse struct {
	Booking      *models.BookingResponse    `json:"booking"`
	Totals       handlers.TotalsView        `json:"totals"`
	Settled      bool                       `json:"settled"`
	Tolerance    int64                      `json:"tolerance"`
	Transactions []handlers.TransactionView `json:"transactions"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBookingInvoice.Response) *InvoiceResponse {
	return &InvoiceResponse{
		Booking:      models.FromDomainBooking(resp.Booking),
		Totals:       handlers.NewTotalsView(resp.Totals),
		Settled:      resp.Settled,
		Tolerance:    resp.Tolerance,
		Transactions: handlers.NewTransactionViews(resp.Transactions),
	}
}
