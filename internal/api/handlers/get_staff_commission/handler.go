package get_staff_commission

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	getStaffCommission "github.com/m04kA/SMC-StudioService/internal/usecase/get_staff_commission"
)

const (
	msgInvalidStaffID = "некорректный ID сотрудника"
	msgInvalidPeriod  = "некорректный период, ожидается YYYY-MM-DD"
	msgStaffNotFound  = "сотрудник не найден"
)

type Handler struct {
	useCase GetStaffCommissionUseCase
	logger  Logger
}

func NewHandler(useCase GetStaffCommissionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/commission
// Query params: startDate, endDate (optional, YYYY-MM-DD, inclusive)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := handlers.PathUUID(r, "staffId")
	if err != nil {
		h.logger.Warn("GET /staff/{id}/commission - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	startDate, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	endDate, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	report, err := h.useCase.Execute(r.Context(), &getStaffCommission.Request{
		StaffID:   staffID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, getStaffCommission.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /staff/{id}/commission - Failed to compute commission: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/commission - Commission computed: staff_id=%s, bookings=%d, total=%d",
		staffID, len(report.Lines), report.TotalCommission)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewCommissionView(report))
}
