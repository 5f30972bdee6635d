package get_staff_commission

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса расчета комиссии
// Период включительный и необязательный
type Request struct {
	StaffID   uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
