package transfer_funds

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	transferFunds "github.com/m04kA/SMC-StudioService/internal/usecase/transfer_funds"
)

// TransferRequest HTTP request model
type TransferRequest struct {
	FromAccountID uuid.UUID `json:"fromAccountId" validate:"required"`
	ToAccountID   uuid.UUID `json:"toAccountId" validate:"required"`
	Amount        int64     `json:"amount" validate:"gt=0"`
	Description   string    `json:"description" validate:"max=500"`
}

// TransferResponse HTTP response model
type TransferResponse struct {
	From        *handlers.AccountView     `json:"from"`
	To          *handlers.AccountView     `json:"to"`
	Transaction *handlers.TransactionView `json:"transaction"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transferFunds.Response) *TransferResponse {
	return &TransferResponse{
		From:        handlers.NewAccountView(resp.From),
		To:          handlers.NewAccountView(resp.To),
		Transaction: handlers.NewTransactionView(resp.Transaction),
	}
}
