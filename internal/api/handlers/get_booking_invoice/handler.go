package get_booking_invoice

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	getBookingInvoice "github.com/m04kA/SMC-StudioService/internal/usecase/get_booking_invoice"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	useCase GetBookingInvoiceUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingInvoiceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/invoice
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/invoice - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getBookingInvoice.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, getBookingInvoice.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{id}/invoice - Failed to build invoice: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/invoice - Invoice built: booking_id=%s, grand_total=%d, due=%d",
		bookingID, result.Totals.GrandTotal, result.Totals.DueAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
