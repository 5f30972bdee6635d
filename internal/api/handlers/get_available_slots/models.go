package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-StudioService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date               string         `json:"date"`
	RoomID             uuid.UUID      `json:"roomId"`
	DurationHours      int            `json:"durationHours"`
	GranularityMinutes int            `json:"granularityMinutes"`
	OpenTime           string         `json:"openTime"`
	CloseTime          string         `json:"closeTime"`
	Slots              []SlotResponse `json:"slots"`
}

// ToUseCaseRequest формирует запрос к use case
// durationHours необязателен, по умолчанию 1 час
func ToUseCaseRequest(roomID uuid.UUID, dateStr string, durationHours *int, audience domain.SlotAudience, onlyAvailable bool) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	duration := 1
	if durationHours != nil {
		duration = *durationHours
	}

	return &getAvailableSlots.Request{
		RoomID:        roomID,
		Date:          date,
		DurationHours: duration,
		Audience:      audience,
		OnlyAvailable: onlyAvailable,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Available: s.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:               resp.Date.Format(domain.DateFormat),
		RoomID:             resp.RoomID,
		DurationHours:      resp.DurationHours,
		GranularityMinutes: resp.GranularityMinutes,
		OpenTime:           resp.OpenTime.String(),
		CloseTime:          resp.CloseTime.String(),
		Slots:              slots,
	}
}
