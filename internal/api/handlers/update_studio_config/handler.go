package update_studio_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig"
	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRoomID      = "некорректный ID зала"
	msgRoomNotFound       = "зал не найден"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/studio/config
// roomId в теле - переопределение зала, без него - студийный уровень
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /studio/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	saved, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, studioconfig.ErrRoomNotFound):
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, studioconfig.ErrInvalidInput):
			h.logger.Warn("PUT /studio/config - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /studio/config - Failed to save config: room_id=%v, error=%v", req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /studio/config - Config saved: id=%d, room_id=%v", saved.ID, saved.RoomID)
	handlers.RespondJSON(w, http.StatusOK, saved)
}

// HandleDeleteOverride DELETE /api/v1/studio/config/rooms/{roomId}
func (h *Handler) HandleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathUUID(r, "roomId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	if err := h.service.DeleteRoomOverride(r.Context(), roomID); err != nil {
		h.logger.Error("DELETE /studio/config/rooms/{id} - Failed: room_id=%s, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /studio/config/rooms/{id} - Override removed: room_id=%s", roomID)
	handlers.RespondNoContent(w)
}
