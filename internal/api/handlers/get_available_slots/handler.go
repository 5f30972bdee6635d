package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StudioService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRoomID   = "некорректный ID зала"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgRoomNotFound    = "зал не найден"
	msgInvalidQuery    = "некорректные параметры запроса"
)

// Handler отдает сетку слотов зала
// Один и тот же handler обслуживает публичный виджет и внутренний календарь,
// отличается только audience (шаг сетки).
type Handler struct {
	useCase  GetAvailableSlotsUseCase
	audience domain.SlotAudience
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, audience domain.SlotAudience, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		audience: audience,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/available-slots (public)
// Handle GET /api/v1/rooms/{roomId}/calendar-slots (internal)
// Query params: date (required, YYYY-MM-DD), durationHours (default 1), onlyAvailable (bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathUUID(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/slots - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationHours, err := handlers.QueryInt(r, "durationHours")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(roomID, dateStr, durationHours, h.audience, handlers.QueryBool(r, "onlyAvailable"))
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/slots - Room not found: room_id=%s", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /rooms/{id}/slots - Invalid query: room_id=%s, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /rooms/{id}/slots - Failed to get slots: room_id=%s, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/slots - Slots retrieved successfully: room_id=%s, audience=%s, slots_count=%d",
		roomID, h.audience, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
