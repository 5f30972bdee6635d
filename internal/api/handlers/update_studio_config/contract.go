package update_studio_config

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig/models"
)

// ConfigService интерфейс сервиса конфигурации студии
type ConfigService interface {
	Upsert(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
	DeleteRoomOverride(ctx context.Context, roomID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
