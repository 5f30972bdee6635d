package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-StudioService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgNotFound           = "бронирование не найдено"
	msgRoomNotFound       = "зал не найден"
	msgCancelled          = "отмененное бронирование нельзя перенести"
	msgVersionConflict    = "бронирование было изменено, обновите данные"
	msgSlotNotAvailable   = "зал занят в выбранное время"
	msgInvalidSchedule    = "некорректное время бронирования"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/schedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if violations := handlers.ValidateStruct(req); violations != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidFields, violations)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, bookingID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/schedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, rescheduleBooking.ErrBookingCancelled):
			handlers.RespondBadRequest(w, msgCancelled)

		case errors.Is(err, domain.ErrVersionConflict):
			h.logger.Warn("PATCH /bookings/{id}/schedule - Version conflict: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PATCH /bookings/{id}/schedule - Slot not available: booking_id=%s", bookingID)
			handlers.RespondDomainError(w, err, msgSlotNotAvailable)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidSchedule+": "+err.Error())

		default:
			h.logger.Error("PATCH /bookings/{id}/schedule - Failed to reschedule: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/schedule - Booking rescheduled: booking_id=%s, version=%d",
		bookingID, result.Booking.Version)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
