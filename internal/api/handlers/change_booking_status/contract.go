package change_booking_status

import (
	"context"

	changeBookingStatus "github.com/m04kA/SMC-StudioService/internal/usecase/change_booking_status"
)

type ChangeBookingStatusUseCase interface {
	Execute(ctx context.Context, req *changeBookingStatus.Request) (*changeBookingStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
