package create_public_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	createPublicBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_public_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля заявки"
	msgPackageNotFound    = "пакет не найден"
	msgInvalidDate        = "нельзя забронировать прошедшую дату"
	msgOutsideHours       = "выбранное время вне часов работы студии"
	msgSlotNotAvailable   = "на выбранное время нет свободных залов"
	msgInvalidRequest     = "некорректная заявка"
)

type Handler struct {
	useCase CreatePublicBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreatePublicBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/public/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req PublicBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /public/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(req); violations != nil {
		h.logger.Warn("POST /public/bookings - Validation failed: %v", violations)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidFields, violations)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /public/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createPublicBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /public/bookings - No free room: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createPublicBooking.ErrPackageNotFound):
			h.logger.Warn("POST /public/bookings - Package not found: package_id=%s", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createPublicBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createPublicBooking.ErrOutsideOperatingHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /public/bookings - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /public/bookings - Failed to create inquiry: date=%s, time=%s, error=%v",
				req.Date, req.Time, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /public/bookings - Inquiry created: booking_id=%s, room=%s, new_client=%t",
		result.Booking.ID, result.RoomName, result.NewClient)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
