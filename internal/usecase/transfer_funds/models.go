package transfer_funds

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Request модель запроса на перевод между счетами
type Request struct {
	Actor         uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        int64
	Description   string
}

// Response модель ответа
type Response struct {
	From        *domain.Account
	To          *domain.Account
	Transaction *domain.Transaction
}
