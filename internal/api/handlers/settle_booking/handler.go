package settle_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	settleBooking "github.com/m04kA/SMC-StudioService/internal/usecase/settle_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccountNotFound    = "счет не найден"
	msgOverpayment        = "сумма превышает остаток к оплате или оплаченную сумму"
	msgInsufficientFunds  = "на счете недостаточно средств для возврата"
	msgVersionConflict    = "бронирование или счет были изменены, повторите операцию"
	msgInvalidSettlement  = "некорректное проведение"
)

type Handler struct {
	useCase SettleBookingUseCase
	logger  Logger
}

func NewHandler(useCase SettleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/settlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/settlements - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SettlementRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/settlements - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if violations := handlers.ValidateStruct(req); violations != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidFields, violations)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &settleBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Mode:      req.Mode,
	})
	if err != nil {
		switch {
		case errors.Is(err, settleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, settleBooking.ErrAccountNotFound):
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, domain.ErrOverpayment):
			h.logger.Warn("POST /bookings/{id}/settlements - Amount out of range: booking_id=%s, mode=%s, amount=%d",
				bookingID, req.Mode, req.Amount)
			handlers.RespondUnprocessable(w, msgOverpayment)

		case errors.Is(err, domain.ErrInsufficientFunds):
			h.logger.Warn("POST /bookings/{id}/settlements - Insufficient funds: account_id=%s, amount=%d",
				req.AccountID, req.Amount)
			handlers.RespondUnprocessable(w, msgInsufficientFunds)

		case errors.Is(err, domain.ErrVersionConflict):
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidSettlement)

		default:
			h.logger.Error("POST /bookings/{id}/settlements - Failed to settle: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/settlements - Settlement applied: booking_id=%s, mode=%s, amount=%d, due=%d",
		bookingID, req.Mode, req.Amount, result.Totals.DueAmount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
