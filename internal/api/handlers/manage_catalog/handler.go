package manage_catalog

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/catalog"
)

const (
	msgUnknownCollection  = "неизвестная коллекция"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля"
	msgInvalidID          = "некорректный ID"
	msgNotFound           = "запись не найдена"
	msgHasDependents      = "запись используется активными бронированиями"
	msgEmailTaken         = "клиент с таким email уже существует"
)

// Handler обслуживает CRUD справочников: rooms, packages, clients, staff, accounts, automation-rules
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/{collection}
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.collection(w, r)
	if !ok {
		return
	}

	var (
		created interface{}
		err     error
	)

	switch entity {
	case catalog.EntityRooms:
		var req CreateRoomRequest
		if !h.decode(w, r, &req) {
			return
		}
		var room *domain.Room
		if room, err = h.service.CreateRoom(r.Context(), req.ToDomain()); err == nil {
			created = handlers.NewRoomView(room)
		}

	case catalog.EntityPackages:
		var req CreatePackageRequest
		if !h.decode(w, r, &req) {
			return
		}
		var pkg *domain.Package
		if pkg, err = h.service.CreatePackage(r.Context(), req.ToDomain()); err == nil {
			created = handlers.NewPackageView(pkg)
		}

	case catalog.EntityClients:
		var req CreateClientRequest
		if !h.decode(w, r, &req) {
			return
		}
		var client *domain.Client
		if client, err = h.service.CreateClient(r.Context(), req.ToDomain()); err == nil {
			created = handlers.NewClientView(client)
		}

	case catalog.EntityStaff:
		var req CreateStaffRequest
		if !h.decode(w, r, &req) {
			return
		}
		var staff *domain.Staff
		if staff, err = h.service.CreateStaff(r.Context(), req.ToDomain()); err == nil {
			created = handlers.NewStaffView(staff)
		}

	case catalog.EntityAccounts:
		var req CreateAccountRequest
		if !h.decode(w, r, &req) {
			return
		}
		var account *domain.Account
		if account, err = h.service.CreateAccount(r.Context(), req.ToDomain()); err == nil {
			created = handlers.NewAccountView(account)
		}

	case catalog.EntityAutomationRules:
		var req CreateAutomationRuleRequest
		if !h.decode(w, r, &req) {
			return
		}
		rule, convErr := req.ToDomain()
		if convErr != nil {
			handlers.RespondBadRequest(w, convErr.Error())
			return
		}
		if rule, err = h.service.CreateAutomationRule(r.Context(), rule); err == nil {
			created = handlers.NewAutomationRuleView(*rule)
		}
	}

	if err != nil {
		h.respondError(w, "POST", entity, err)
		return
	}

	h.logger.Info("POST /%s - Created", entity)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

// List GET /api/v1/{collection}
// Query params: includeArchived (rooms, packages)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.collection(w, r)
	if !ok {
		return
	}

	includeArchived := handlers.QueryBool(r, "includeArchived")

	ctx := r.Context()
	var (
		items interface{}
		err   error
	)

	switch entity {
	case catalog.EntityRooms:
		var rooms []*domain.Room
		if rooms, err = h.service.ListRooms(ctx, includeArchived); err == nil {
			views := make([]handlers.RoomView, 0, len(rooms))
			for _, room := range rooms {
				views = append(views, handlers.NewRoomView(room))
			}
			items = views
		}

	case catalog.EntityPackages:
		var packages []*domain.Package
		if packages, err = h.service.ListPackages(ctx, includeArchived); err == nil {
			views := make([]handlers.PackageView, 0, len(packages))
			for _, pkg := range packages {
				views = append(views, handlers.NewPackageView(pkg))
			}
			items = views
		}

	case catalog.EntityClients:
		var clients []*domain.Client
		if clients, err = h.service.ListClients(ctx); err == nil {
			views := make([]handlers.ClientView, 0, len(clients))
			for _, client := range clients {
				views = append(views, handlers.NewClientView(client))
			}
			items = views
		}

	case catalog.EntityStaff:
		var staff []*domain.Staff
		if staff, err = h.service.ListStaff(ctx); err == nil {
			views := make([]handlers.StaffView, 0, len(staff))
			for _, s := range staff {
				views = append(views, handlers.NewStaffView(s))
			}
			items = views
		}

	case catalog.EntityAccounts:
		var accounts []*domain.Account
		if accounts, err = h.service.ListAccounts(ctx); err == nil {
			views := make([]*handlers.AccountView, 0, len(accounts))
			for _, account := range accounts {
				views = append(views, handlers.NewAccountView(account))
			}
			items = views
		}

	case catalog.EntityAutomationRules:
		var rules []domain.AutomationRule
		if rules, err = h.service.ListAutomationRules(ctx); err == nil {
			views := make([]handlers.AutomationRuleView, 0, len(rules))
			for _, rule := range rules {
				views = append(views, handlers.NewAutomationRuleView(rule))
			}
			items = views
		}
	}

	if err != nil {
		h.respondError(w, "GET", entity, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ListResponse{Collection: string(entity), Items: items})
}

// Delete DELETE /api/v1/{collection}/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	entity, ok := h.collection(w, r)
	if !ok {
		return
	}

	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /%s/{id} - Invalid ID: %v", entity, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), entity, id); err != nil {
		h.respondError(w, "DELETE", entity, err)
		return
	}

	h.logger.Info("DELETE /%s/{id} - Deleted: id=%s", entity, id)
	handlers.RespondNoContent(w)
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) (catalog.Entity, bool) {
	entity := catalog.Entity(mux.Vars(r)["collection"])
	if !entity.IsValid() {
		handlers.RespondNotFound(w, msgUnknownCollection)
		return "", false
	}
	return entity, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := handlers.DecodeJSON(r, dst); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	if violations := handlers.ValidateStruct(dst); violations != nil {
		handlers.RespondErrorWithDetails(w, http.StatusBadRequest, msgInvalidFields, violations)
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, method string, entity catalog.Entity, err error) {
	switch {
	case errors.Is(err, catalog.ErrEmailTaken):
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, domain.ErrIntegrity):
		h.logger.Warn("%s /%s - Blocked by dependents: %v", method, entity, err)
		handlers.RespondDomainError(w, err, msgHasDependents)

	case errors.Is(err, domain.ErrNotFound):
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, domain.ErrValidation):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s /%s - Failed: %v", method, entity, err)
		handlers.RespondInternalError(w)
	}
}
