package studioconfig

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации студии
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.StudioConfig) (*domain.StudioConfig, error)
	GetByRoom(ctx context.Context, roomID *uuid.UUID) (*domain.StudioConfig, error)
	GetHierarchy(ctx context.Context, roomID *uuid.UUID) ([]*domain.StudioConfig, error)
	GetAll(ctx context.Context) ([]*domain.StudioConfig, error)
	Update(ctx context.Context, id int64, config *domain.StudioConfig) (*domain.StudioConfig, error)
	DeleteByRoom(ctx context.Context, roomID uuid.UUID) error
}

// RoomRepository интерфейс репозитория залов
type RoomRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
