package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Service справочники студии: залы, пакеты, клиенты, сотрудники, счета, правила автоматизации
type Service struct {
	rooms        RoomRepository
	packages     PackageRepository
	clients      ClientRepository
	staff        StaffRepository
	accounts     AccountRepository
	rules        AutomationRepository
	bookings     BookingRepository
	transactions TransactionRepository
	txManager    TransactionManager
	logger       Logger
}

// Repositories набор репозиториев для сервиса справочников
type Repositories struct {
	Rooms        RoomRepository
	Packages     PackageRepository
	Clients      ClientRepository
	Staff        StaffRepository
	Accounts     AccountRepository
	Rules        AutomationRepository
	Bookings     BookingRepository
	Transactions TransactionRepository
}

// NewService создает новый экземпляр сервиса справочников
func NewService(repos Repositories, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		rooms:        repos.Rooms,
		packages:     repos.Packages,
		clients:      repos.Clients,
		staff:        repos.Staff,
		accounts:     repos.Accounts,
		rules:        repos.Rules,
		bookings:     repos.Bookings,
		transactions: repos.Transactions,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateRoom создает зал
func (s *Service) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	if err := validateName(room.Name); err != nil {
		return nil, err
	}
	assignID(&room.ID)

	created, err := s.rooms.Create(ctx, room)
	if err != nil {
		s.logger.Error("CreateRoom: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRoom - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateRoom: created room id=%s name=%s", created.ID, created.Name)
	return created, nil
}

// CreatePackage создает пакет услуг
func (s *Service) CreatePackage(ctx context.Context, pkg *domain.Package) (*domain.Package, error) {
	if err := validateName(pkg.Name); err != nil {
		return nil, err
	}
	if pkg.DurationHours < domain.MinDurationHours || pkg.DurationHours > domain.MaxDurationHours {
		return nil, fmt.Errorf("%w: durationHours must be between %d and %d",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}
	if pkg.BasePrice < 0 {
		return nil, fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}
	for _, c := range pkg.CostBreakdown {
		if c.Amount < 0 {
			return nil, fmt.Errorf("%w: cost %q must not be negative", ErrInvalidInput, c.Name)
		}
	}
	assignID(&pkg.ID)

	created, err := s.packages.Create(ctx, pkg)
	if err != nil {
		s.logger.Error("CreatePackage: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreatePackage - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreatePackage: created package id=%s name=%s", created.ID, created.Name)
	return created, nil
}

// CreateClient создает клиента
// Email уникален без учета регистра
func (s *Service) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	if err := validateName(client.Name); err != nil {
		return nil, err
	}
	if !strings.Contains(client.Email, "@") {
		return nil, fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}

	existing, err := s.clients.GetByEmail(ctx, client.Email)
	if err != nil && !isNotFound(err) {
		s.logger.Error("CreateClient: failed to check email: %v", err)
		return nil, fmt.Errorf("%w: CreateClient - check email: %v", ErrInternal, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	assignID(&client.ID)

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		s.logger.Error("CreateClient: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateClient - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateClient: created client id=%s", created.ID)
	return created, nil
}

// CreateStaff создает сотрудника
func (s *Service) CreateStaff(ctx context.Context, staff *domain.Staff) (*domain.Staff, error) {
	if err := validateName(staff.Name); err != nil {
		return nil, err
	}
	if !staff.Role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, staff.Role)
	}
	if staff.CommissionRate.IsNegative() || staff.CommissionRate.GreaterThan(decimal.NewFromInt(domain.MaxCommissionPercent)) {
		return nil, fmt.Errorf("%w: commissionRate must be between 0 and %d", ErrInvalidInput, domain.MaxCommissionPercent)
	}
	assignID(&staff.ID)

	created, err := s.staff.Create(ctx, staff)
	if err != nil {
		s.logger.Error("CreateStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateStaff - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateStaff: created staff id=%s role=%s", created.ID, created.Role)
	return created, nil
}

// CreateAccount создает счет с начальным балансом
func (s *Service) CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if err := validateName(account.Name); err != nil {
		return nil, err
	}
	if !account.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, account.Type)
	}
	assignID(&account.ID)
	account.Version = 1

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		s.logger.Error("CreateAccount: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAccount - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAccount: created account id=%s type=%s", created.ID, created.Type)
	return created, nil
}

// CreateAutomationRule добавляет правило автоматизации в конец списка
func (s *Service) CreateAutomationRule(ctx context.Context, rule *domain.AutomationRule) (*domain.AutomationRule, error) {
	if err := validateName(rule.Name); err != nil {
		return nil, err
	}
	if !rule.TriggerStatus.IsValid() || rule.TriggerStatus.IsInitial() || rule.TriggerStatus == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: triggerStatus %q cannot fire automation", ErrInvalidInput, rule.TriggerStatus)
	}
	if len(rule.TaskTemplates) > domain.MaxTaskTemplates {
		return nil, fmt.Errorf("%w: at most %d task templates", ErrInvalidInput, domain.MaxTaskTemplates)
	}
	for _, title := range rule.TaskTemplates {
		if strings.TrimSpace(title) == "" {
			return nil, fmt.Errorf("%w: task template must not be blank", ErrInvalidInput)
		}
	}

	if rule.TriggerPackageID != nil {
		if _, err := s.packages.GetByID(ctx, *rule.TriggerPackageID); err != nil {
			return nil, s.referenceError("CreateAutomationRule", "package", err)
		}
	}
	if rule.AssigneeID != nil {
		if _, err := s.staff.GetByID(ctx, *rule.AssigneeID); err != nil {
			return nil, s.referenceError("CreateAutomationRule", "assignee", err)
		}
	}
	assignID(&rule.ID)

	created, err := s.rules.Create(ctx, rule)
	if err != nil {
		s.logger.Error("CreateAutomationRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateAutomationRule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateAutomationRule: created rule id=%s trigger=%s position=%d",
		created.ID, created.TriggerStatus, created.Position)
	return created, nil
}

// ListRooms возвращает залы
func (s *Service) ListRooms(ctx context.Context, includeArchived bool) ([]*domain.Room, error) {
	rooms, err := s.rooms.List(ctx, includeArchived)
	if err != nil {
		return nil, s.listError("ListRooms", err)
	}
	return rooms, nil
}

// ListPackages возвращает пакеты
func (s *Service) ListPackages(ctx context.Context, includeArchived bool) ([]*domain.Package, error) {
	packages, err := s.packages.List(ctx, includeArchived)
	if err != nil {
		return nil, s.listError("ListPackages", err)
	}
	return packages, nil
}

// ListClients возвращает клиентов
func (s *Service) ListClients(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, s.listError("ListClients", err)
	}
	return clients, nil
}

// ListStaff возвращает сотрудников
func (s *Service) ListStaff(ctx context.Context) ([]*domain.Staff, error) {
	members, err := s.staff.List(ctx)
	if err != nil {
		return nil, s.listError("ListStaff", err)
	}
	return members, nil
}

// ListAccounts возвращает счета
func (s *Service) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, s.listError("ListAccounts", err)
	}
	return accounts, nil
}

// ListAutomationRules возвращает правила в порядке срабатывания
func (s *Service) ListAutomationRules(ctx context.Context) ([]domain.AutomationRule, error) {
	rules, err := s.rules.List(ctx)
	if err != nil {
		return nil, s.listError("ListAutomationRules", err)
	}
	return rules, nil
}

// Delete удаляет запись справочника с проверкой целостности
// Зал, пакет, клиента или сотрудника нельзя удалить, пока на них ссылаются живые брони
// (или правила автоматизации). Счет нельзя удалить, если по нему есть проводки.
// При отказе ничего не записывается.
func (s *Service) Delete(ctx context.Context, entity Entity, id uuid.UUID) error {
	s.logger.Info("Delete: deleting %s id=%s", entity, id)

	if !entity.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}

	return s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		dependents, err := s.dependents(ctx, entity, id)
		if err != nil {
			s.logger.Error("Delete: failed to check dependents of %s id=%s: %v", entity, id, err)
			return fmt.Errorf("%w: Delete - check dependents: %v", ErrInternal, err)
		}

		if len(dependents) > 0 {
			s.logger.Warn("Delete: %s id=%s has %d live dependents", entity, id, len(dependents))
			return &domain.IntegrityError{Entity: string(entity), ID: id, Dependents: dependents}
		}

		if err := s.deleteOne(ctx, entity, id); err != nil {
			if isNotFound(err) {
				return err
			}
			s.logger.Error("Delete: repository error for %s id=%s: %v", entity, id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: deleted %s id=%s", entity, id)
		return nil
	})
}

// dependents возвращает id документов, блокирующих удаление
func (s *Service) dependents(ctx context.Context, entity Entity, id uuid.UUID) ([]uuid.UUID, error) {
	filter := domain.BookingsFilter{OnlyLive: true}

	switch entity {
	case EntityRooms:
		filter.RoomID = &id
	case EntityPackages:
		filter.PackageID = &id
	case EntityClients:
		filter.ClientID = &id
	case EntityStaff:
		filter.StaffID = &id
	case EntityAccounts:
		txns, err := s.transactions.List(ctx, domain.TransactionsFilter{AccountID: &id})
		if err != nil {
			return nil, err
		}
		ids := make([]uuid.UUID, len(txns))
		for i, t := range txns {
			ids[i] = t.ID
		}
		return ids, nil
	default:
		return nil, nil
	}

	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	if entity == EntityPackages || entity == EntityStaff {
		rules, err := s.rules.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range rules {
			if (entity == EntityPackages && r.TriggerPackageID != nil && *r.TriggerPackageID == id) ||
				(entity == EntityStaff && r.AssigneeID != nil && *r.AssigneeID == id) {
				ids = append(ids, r.ID)
			}
		}
	}

	return ids, nil
}

func (s *Service) deleteOne(ctx context.Context, entity Entity, id uuid.UUID) error {
	switch entity {
	case EntityRooms:
		return s.rooms.Delete(ctx, id)
	case EntityPackages:
		return s.packages.Delete(ctx, id)
	case EntityClients:
		return s.clients.Delete(ctx, id)
	case EntityStaff:
		return s.staff.Delete(ctx, id)
	case EntityAccounts:
		return s.accounts.Delete(ctx, id)
	case EntityAutomationRules:
		return s.rules.Delete(ctx, id)
	}
	return fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
}

func (s *Service) referenceError(op, what string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %s not found", ErrInvalidInput, what)
	}
	s.logger.Error("%s: failed to load %s: %v", op, what, err)
	return fmt.Errorf("%w: %s - load %s: %v", ErrInternal, op, what, err)
}

func (s *Service) listError(op string, err error) error {
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
