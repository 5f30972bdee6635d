package create_public_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Request заявка с публичного виджета
type Request struct {
	ClientName  string
	ClientEmail string
	ClientPhone string
	Date        time.Time        // Дата (без времени)
	StartTime   types.TimeString // Время начала
	PackageID   uuid.UUID
	Notes       *string
}

// Response созданная заявка
type Response struct {
	Booking   *domain.Booking
	RoomName  string
	NewClient bool // клиент создан этой заявкой
}
