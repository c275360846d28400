package permissions

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/jalvarado/incident-management/internal"
	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/internal/transport"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

type ServiceAPI interface {
	CreatePermission(dto CreatePermissionDTO) (*userDatamodel.Permission, error)
	FindPermissions(params pagination.Params, action, subject string) (pagination.Response[userDatamodel.Permission], error)
	GetPermission(id int64) (*userDatamodel.Permission, error)
	PatchPermission(id int64, dto PatchPermissionDTO) (*userDatamodel.Permission, error)
	UpdatePermission(id int64, dto CreatePermissionDTO) (*userDatamodel.Permission, error)
	DeletePermission(id int64) error

	CreateRole(dto CreateRoleDTO) (*userDatamodel.Role, error)
	FindRoles(params pagination.Params, name string) (pagination.Response[userDatamodel.Role], error)
	GetRole(id int64) (*userDatamodel.Role, error)
	UpdateRole(id int64, dto CreateRoleDTO) (*userDatamodel.Role, error)
	DeleteRole(id int64) error

	CreateGrant(dto CreateRoleHasPermissionDTO) (*userDatamodel.RoleHasPermission, error)
	FindGrants(params pagination.Params, roleID, permissionID int64) (pagination.Response[userDatamodel.RoleHasPermission], error)
	GetGrant(id int64) (*userDatamodel.RoleHasPermission, error)
	DeleteGrant(id int64) error

	PermissionsForUser(userID int64) ([]userDatamodel.Permission, error)
	CheckUserPermission(userID int64, dto CheckPermissionDTO) (*CheckResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPermissionNotFound), errors.Is(err, ErrGrantNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodePermissionNotFound))
	case errors.Is(err, ErrRoleNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeRoleNotFound))
	case errors.Is(err, ErrUserNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeUserNotFound))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ---- permissions ----

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.Service.CreatePermission(dto)
	if err != nil {
		h.Logger.Error("CreatePermission: failed", "error", err)
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) FindPermissions(w http.ResponseWriter, r *http.Request) {
	params := pagination.Parse(r, "id", "action", "subject", "created_at")
	res, err := h.Service.FindPermissions(params, r.URL.Query().Get("action"), r.URL.Query().Get("subject"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	p, err := h.Service.GetPermission(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) PatchPermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	var dto PatchPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.Service.PatchPermission(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) PutPermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.Service.UpdatePermission(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) DeletePermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid permission id")
		return
	}

	if err := h.Service.DeletePermission(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- permission checks ----

// CheckCurrentUserPermission evaluates an (action, subject) pair against a
// freshly built ability for the request actor.
func (h *Handler) CheckCurrentUserPermission(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authenticated user")
		return
	}

	dto := CheckPermissionDTO{
		Action:  r.URL.Query().Get("action"),
		Subject: r.URL.Query().Get("subject"),
	}
	result, err := h.Service.CheckUserPermission(actor.ID, dto)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			h.writeServiceError(w, err)
			return
		}
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// CheckUserPermission evaluates an (action, subject) pair for an arbitrary
// user id.
func (h *Handler) CheckUserPermission(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	dto := CheckPermissionDTO{
		Action:  r.URL.Query().Get("action"),
		Subject: r.URL.Query().Get("subject"),
	}
	result, err := h.Service.CheckUserPermission(id, dto)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			h.WriteError(w, http.StatusNotFound, fmt.Sprintf("user with id %d not found", id))
			return
		}
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

// FindUserPermissions lists the grants effective for a user; without an id
// query parameter it reports on the request actor.
func (h *Handler) FindUserPermissions(w http.ResponseWriter, r *http.Request) {
	var userID int64
	if raw := r.URL.Query().Get("id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		userID = parsed
	} else {
		actor, ok := internal.ActorFromContext(r.Context())
		if !ok {
			h.WriteError(w, http.StatusUnauthorized, "missing authenticated user")
			return
		}
		userID = actor.ID
	}

	perms, err := h.Service.PermissionsForUser(userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, perms)
}

// ---- roles ----

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.Service.CreateRole(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, role)
}

func (h *Handler) FindRoles(w http.ResponseWriter, r *http.Request) {
	params := pagination.Parse(r, "id", "name", "created_at")
	res, err := h.Service.FindRoles(params, r.URL.Query().Get("name"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	role, err := h.Service.GetRole(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) PatchRole(w http.ResponseWriter, r *http.Request) {
	h.PutRole(w, r)
}

func (h *Handler) PutRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.Service.UpdateRole(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, role)
}

func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid role id")
		return
	}

	if err := h.Service.DeleteRole(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- role permission grants ----

func (h *Handler) CreateGrant(w http.ResponseWriter, r *http.Request) {
	var dto CreateRoleHasPermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.Service.CreateGrant(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, g)
}

func (h *Handler) FindGrants(w http.ResponseWriter, r *http.Request) {
	params := pagination.Parse(r, "id", "role_id", "permission_id", "created_at")

	var roleID, permissionID int64
	if raw := r.URL.Query().Get("roleId"); raw != "" {
		roleID, _ = strconv.ParseInt(raw, 10, 64)
	}
	if raw := r.URL.Query().Get("permissionId"); raw != "" {
		permissionID, _ = strconv.ParseInt(raw, 10, 64)
	}

	res, err := h.Service.FindGrants(params, roleID, permissionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) GetGrant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grant id")
		return
	}

	g, err := h.Service.GetGrant(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, g)
}

func (h *Handler) DeleteGrant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid grant id")
		return
	}

	if err := h.Service.DeleteGrant(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
