package get_booking_invoice

import (
	"context"

	getBookingInvoice "github.com/m04kA/SMC-StudioService/internal/usecase/get_booking_invoice"
)

type GetBookingInvoiceUseCase interface {
	Execute(ctx context.Context, req *getBookingInvoice.Request) (*getBookingInvoice.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
