package get_staff_commission

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	getStaffCommission "github.com/m04kA/SMC-StudioService/internal/usecase/get_staff_commission"
)

type GetStaffCommissionUseCase interface {
	Execute(ctx context.Context, req *getStaffCommission.Request) (*ledger.CommissionReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
