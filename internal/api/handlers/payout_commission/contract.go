package payout_commission

import (
	"context"

	payoutCommission "github.com/m04kA/SMC-StudioService/internal/usecase/payout_commission"
)

type PayoutCommissionUseCase interface {
	Execute(ctx context.Context, req *payoutCommission.Request) (*payoutCommission.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
