package payout_commission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/internal/usecase/get_staff_commission"
)

// CommissionCalculator расчет комиссии (get_staff_commission)
type CommissionCalculator interface {
	Execute(ctx context.Context, req *get_staff_commission.Request) (*ledger.CommissionReport, error)
}

// AccountRepository интерфейс репозитория счетов
type AccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateBalance(ctx context.Context, account *domain.Account) (*domain.Account, error)
}

// TransactionRepository интерфейс журнала проводок
type TransactionRepository interface {
	Create(ctx context.Context, txn *domain.Transaction) (*domain.Transaction, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
