package payout_commission

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/domain"
)

const (
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgNotFound           = "сотрудник или счет не найден"
	msgNothingToPay       = "нет комиссии к выплате"
	msgVersionConflict    = "счет был изменен, повторите операцию"
)

type Handler struct {
	useCase PayoutCommissionUseCase
	logger  Logger
}

func NewHandler(useCase PayoutCommissionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/{staffId}/payouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathUUID(r, "staffId")
	if err != nil {
		h.logger.Warn("POST /staff/{id}/payouts - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	actor, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PayoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/payouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if violations := handlers.ValidateStruct(req); violations != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidFields, violations)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, staffID)
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrVersionConflict):
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /staff/{id}/payouts - Rejected: staff_id=%s, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgNothingToPay)

		default:
			h.logger.Error("POST /staff/{id}/payouts - Failed to pay out: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/payouts - Commission paid: staff_id=%s, amount=%d, account_id=%s",
		staffID, result.Report.TotalCommission, req.AccountID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
