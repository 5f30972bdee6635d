package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// Request модель запроса на получение слотов зала
type Request struct {
	RoomID        uuid.UUID           // ID зала
	Date          time.Time           // Дата (без времени)
	DurationHours int                 // Длительность сессии в часах
	Audience      domain.SlotAudience // public - виджет сайта, internal - календарь студии
	OnlyAvailable bool                // Вернуть только свободные слоты
}

// Response модель ответа со списком слотов
type Response struct {
	Date               time.Time
	RoomID             uuid.UUID
	DurationHours      int
	GranularityMinutes int
	OpenTime           types.TimeString
	CloseTime          types.TimeString
	Slots              []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания, пусто если выходит за сутки
	Available bool
}
