package transfer_funds

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	transferFunds "github.com/m04kA/SMC-StudioService/internal/usecase/transfer_funds"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля перевода"
	msgAccountNotFound    = "счет не найден"
	msgVersionConflict    = "счет был изменен, повторите операцию"
	msgInvalidTransfer    = "некорректный перевод"
	msgSameAccount        = "счета списания и зачисления совпадают"
)

type Handler struct {
	useCase TransferFundsUseCase
	logger  Logger
}

func NewHandler(useCase TransferFundsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/accounts/transfers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req TransferRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /accounts/transfers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if violations := handlers.ValidateStruct(req); violations != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidFields, violations)
		return
	}
	if req.FromAccountID == req.ToAccountID {
		handlers.RespondBadRequest(w, msgSameAccount)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transferFunds.Request{
		Actor:         actor,
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, transferFunds.ErrAccountNotFound):
			handlers.RespondNotFound(w, msgAccountNotFound)

		case errors.Is(err, domain.ErrVersionConflict):
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidTransfer)

		default:
			h.logger.Error("POST /accounts/transfers - Failed to transfer: from=%s, to=%s, error=%v",
				req.FromAccountID, req.ToAccountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /accounts/transfers - Transfer completed: from=%s, to=%s, amount=%d",
		req.FromAccountID, req.ToAccountID, req.Amount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
