package get_studio_config

import (
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
)

const msgInvalidRoomID = "некорректный ID зала"

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

// Handle GET /api/v1/studio/config?roomId=
// Возвращает итоговую конфигурацию: зал -> студия -> значения по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.QueryUUID(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /studio/config - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	config, err := h.service.Get(r.Context(), roomID)
	if err != nil {
		h.logger.Error("GET /studio/config - Failed to resolve config: room_id=%v, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, config)
}

// HandleLevels GET /api/v1/studio/config/levels
func (h *Handler) HandleLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := h.service.GetAll(r.Context())
	if err != nil {
		h.logger.Error("GET /studio/config/levels - Failed to list config levels: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /studio/config/levels - Listed %d levels", len(levels.Configs))
	handlers.RespondJSON(w, http.StatusOK, levels)
}
