package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotNotAvailable   = "зал занят в выбранное время"
	msgRoomNotFound       = "зал не найден"
	msgRoomArchived       = "зал в архиве"
	msgPackageNotFound    = "пакет не найден"
	msgClientNotFound     = "клиент не найден"
	msgStaffNotFound      = "сотрудник не найден"
	msgInvalidBooking     = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if violations := handlers.ValidateStruct(req); violations != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", violations)
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidFields, violations)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты, времени и статуса)
	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /bookings - Slot not available: room_id=%s, date=%s, start=%s",
				req.RoomID, req.Date, req.StartTime)
			handlers.RespondDomainError(w, err, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%s", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrRoomArchived):
			h.logger.Warn("POST /bookings - Room archived: room_id=%s", req.RoomID)
			handlers.RespondBadRequest(w, msgRoomArchived)

		case errors.Is(err, createBooking.ErrPackageNotFound):
			h.logger.Warn("POST /bookings - Package not found: package_id=%v", req.PackageID)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createBooking.ErrClientNotFound):
			h.logger.Warn("POST /bookings - Client not found: client_id=%s", req.ClientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: primary=%v, secondary=%v",
				req.PrimaryStaffID, req.SecondaryStaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /bookings - Invalid booking: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBooking+": "+err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: room_id=%s, client_id=%s, error=%v",
				req.RoomID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, room_id=%s, overridden=%d",
		result.Booking.ID, result.Booking.RoomID, len(result.OverriddenConflicts))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
