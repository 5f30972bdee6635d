package payout_commission

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// Request модель запроса на выплату комиссии
type Request struct {
	Actor     uuid.UUID
	StaffID   uuid.UUID
	AccountID uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

// Response модель ответа
type Response struct {
	Report      *ledger.CommissionReport
	Account     *domain.Account
	Transaction *domain.Transaction
}
