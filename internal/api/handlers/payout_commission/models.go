package payout_commission

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	payoutCommission "github.com/m04kA/SMC-StudioService/internal/usecase/payout_commission"
)

// PayoutRequest HTTP request model
type PayoutRequest struct {
	AccountID uuid.UUID `json:"accountId" validate:"required"`
	StartDate *string   `json:"startDate,omitempty"`
	EndDate   *string   `json:"endDate,omitempty"`
}

// PayoutResponse HTTP response model
type PayoutResponse struct {
	Commission  *handlers.CommissionView  `json:"commission"`
	Account     *handlers.AccountView     `json:"account"`
	Transaction *handlers.TransactionView `json:"transaction"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PayoutRequest) ToUseCaseRequest(actor, staffID uuid.UUID) (*payoutCommission.Request, error) {
	startDate, err := optionalDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	endDate, err := optionalDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	return &payoutCommission.Request{
		Actor:     actor,
		StaffID:   staffID,
		AccountID: r.AccountID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *payoutCommission.Response) *PayoutResponse {
	return &PayoutResponse{
		Commission:  handlers.NewCommissionView(resp.Report),
		Account:     handlers.NewAccountView(resp.Account),
		Transaction: handlers.NewTransactionView(resp.Transaction),
	}
}

func optionalDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	date, err := handlers.ParseDate(*raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
