package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// RoomRepository интерфейс репозитория залов
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Room, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Room, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Package, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error)
	List(ctx context.Context) ([]*domain.Staff, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AccountRepository интерфейс репозитория счетов
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AutomationRepository интерфейс репозитория правил автоматизации
type AutomationRepository interface {
	Create(ctx context.Context, rule *domain.AutomationRule) (*domain.AutomationRule, error)
	List(ctx context.Context) ([]domain.AutomationRule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingRepository интерфейс репозитория бронирований (проверка зависимостей)
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TransactionRepository интерфейс журнала проводок (проверка зависимостей)
type TransactionRepository interface {
	List(ctx context.Context, filter domain.TransactionsFilter) ([]*domain.Transaction, error)
}

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
