package get_booking_invoice

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// TransactionRepository интерфейс журнала проводок
type TransactionRepository interface {
	List(ctx context.Context, filter domain.TransactionsFilter) ([]*domain.Transaction, error)
}

// ConfigResolver источник разрешенной конфигурации студии
type ConfigResolver interface {
	GetResolved(ctx context.Context, roomID *uuid.UUID) (domain.ResolvedConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
