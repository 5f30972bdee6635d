package domain

import "github.com/m04kA/SMC-StudioService/pkg/types"

// Default configuration values
const (
	DefaultTaxRatePercent      = 11
	DefaultPublicSlotMinutes   = 30
	DefaultInternalSlotMinutes = 60
	DefaultOpenTime            = types.TimeString("09:00")
	DefaultCloseTime           = types.TimeString("21:00")

	// DefaultSettlementTolerance допуск в минорных единицах, в пределах которого бронь считается оплаченной
	DefaultSettlementTolerance int64 = 100
)

// Business validation constants
const (
	MinDurationHours     = 1
	MaxDurationHours     = 24
	MinSlotMinutes       = 5
	MaxSlotMinutes       = 240
	MaxNotesLength       = 1000
	MaxTaskTemplates     = 50
	MaxLineItems         = 100
	UMKMFinalTaxPerMille = 5 // PPh Final 0.5%
	MaxTaxRatePercent    = 100
	MaxCommissionPercent = 100
	MaxDiscountPercent   = 100
	MaxNameLength        = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// LiveStatuses нетерминальные статусы - такие брони блокируют удаление справочников
var LiveStatuses = []BookingStatus{
	StatusInquiry,
	StatusBooked,
	StatusShooting,
	StatusCulling,
	StatusEditing,
	StatusReview,
}
