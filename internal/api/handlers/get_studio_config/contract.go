package get_studio_config

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/service/studioconfig/models"
)

// ConfigService интерфейс сервиса конфигурации студии
type ConfigService interface {
	Get(ctx context.Context, roomID *uuid.UUID) (*models.ResolvedConfigResponse, error)
	GetAll(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
