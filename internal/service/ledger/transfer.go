package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// TransferResult результат перевода между счетами
type TransferResult struct {
	From        *domain.Account
	To          *domain.Account
	Transaction *domain.Transaction
}

// Transfer переводит средства между счетами
// Достаточность баланса не проверяется: источник может уйти в минус.
func Transfer(from, to *domain.Account, amount int64, description string, actor uuid.UUID, now time.Time) (*TransferResult, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: both accounts are required", domain.ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if from.ID == to.ID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", domain.ErrValidation)
	}

	updatedFrom := from.Clone()
	updatedTo := to.Clone()
	updatedFrom.Balance -= amount
	updatedTo.Balance += amount
	updatedFrom.UpdatedAt = now
	updatedTo.UpdatedAt = now

	if description == "" {
		description = fmt.Sprintf("Transfer %s -> %s", from.Name, to.Name)
	}

	toID := to.ID
	return &TransferResult{
		From: updatedFrom,
		To:   updatedTo,
		Transaction: &domain.Transaction{
			ID:          uuid.New(),
			Type:        domain.TransactionTransfer,
			Category:    domain.CategoryTransfer,
			Amount:      amount,
			AccountID:   from.ID,
			ToAccountID: &toID,
			Description: description,
			Date:        now,
			Status:      domain.TransactionCompleted,
			CreatedBy:   actor,
			CreatedAt:   now,
		},
	}, nil
}
