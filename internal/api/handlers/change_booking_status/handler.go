package change_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	changeBookingStatus "github.com/m04kA/SMC-StudioService/internal/usecase/change_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус"
	msgNotFound           = "бронирование не найдено"
	msgVersionConflict    = "бронирование было изменено, обновите данные"
)

type Handler struct {
	useCase ChangeBookingStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeBookingStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if violations := handlers.ValidateStruct(req); violations != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidStatus, violations)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeBookingStatus.Request{
		Actor:           actor,
		BookingID:       bookingID,
		Status:          req.Status,
		ExpectedVersion: req.ExpectedVersion,
	})
	if err != nil {
		switch {
		case errors.Is(err, changeBookingStatus.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrVersionConflict):
			h.logger.Warn("PATCH /bookings/{id}/status - Version conflict: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid status %q: %v", req.Status, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status changed: booking_id=%s, %s -> %s, automation=%t",
		bookingID, result.Automation.PreviousStatus, result.Booking.Status, result.Automation.AutomationFired)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
