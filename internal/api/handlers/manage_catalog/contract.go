package manage_catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/catalog"
)

// CatalogService интерфейс сервиса справочников
type CatalogService interface {
	CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error)
	CreatePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	CreateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error)
	CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)
	CreateAutomationRule(ctx context.Context, rule *domain.AutomationRule) (*domain.AutomationRule, error)

	ListRooms(ctx context.Context, includeArchived bool) ([]*domain.Room, error)
	ListPackages(ctx context.Context, includeArchived bool) ([]*domain.Package, error)
	ListClients(ctx context.Context) ([]*domain.Client, error)
	ListStaff(ctx context.Context) ([]*domain.Staff, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	ListAutomationRules(ctx context.Context) ([]domain.AutomationRule, error)

	Delete(ctx context.Context, entity catalog.Entity, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
