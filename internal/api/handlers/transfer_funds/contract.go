package transfer_funds

import (
	"context"

	transferFunds "github.com/m04kA/SMC-StudioService/internal/usecase/transfer_funds"
)

type TransferFundsUseCase interface {
	Execute(ctx context.Context, req *transferFunds.Request) (*transferFunds.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
