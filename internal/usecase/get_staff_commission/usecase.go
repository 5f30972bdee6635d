package get_staff_commission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	staffRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// UseCase use case для расчета комиссии сотрудника
type UseCase struct {
	staffRepo   StaffRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(staffRepo StaffRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		staffRepo:   staffRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case расчета комиссии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*ledger.CommissionReport, error) {
	uc.logger.Info("GetStaffCommission: staff=%s, start=%v, end=%v", req.StaffID, req.StartDate, req.EndDate)

	// 1. Валидация входных данных
	if req.StaffID == uuid.Nil {
		return nil, fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	// 2. Сотрудник
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetStaffCommission: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetStaffCommission: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 3. Завершенные брони с участием сотрудника
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		StaffID:   &staff.ID,
		Statuses:  []domain.BookingStatus{domain.StatusCompleted},
	})
	if err != nil {
		uc.logger.Error("GetStaffCommission: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Расчет
	report := ledger.Commission(staff, bookings)

	uc.logger.Info("GetStaffCommission: staff id=%s, %d bookings, net=%d, commission=%d",
		staff.ID, len(report.Lines), report.TotalNetSales, report.TotalCommission)

	return &report, nil
}
