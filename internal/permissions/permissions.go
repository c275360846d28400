package permissions

import (
	"errors"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

// Domain errors
var (
	ErrPermissionNotFound = errors.New("permission not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrGrantNotFound      = errors.New("role permission grant not found")
	ErrUserNotFound       = errors.New("user not found")
)

// Policy declarations for the permission catalog's own endpoints.
var (
	CreatePermissionPolicy = Allow(ActionCreate, userDatamodel.Permission{})
	ReadPermissionPolicy   = Allow(ActionRead, userDatamodel.Permission{})
	UpdatePermissionPolicy = Allow(ActionUpdate, userDatamodel.Permission{})
	DeletePermissionPolicy = Allow(ActionDelete, userDatamodel.Permission{})

	CreateRolePolicy = Allow(ActionCreate, userDatamodel.Role{})
	ReadRolePolicy   = Allow(ActionRead, userDatamodel.Role{})
	UpdateRolePolicy = Allow(ActionUpdate, userDatamodel.Role{})
	DeleteRolePolicy = Allow(ActionDelete, userDatamodel.Role{})

	CreateGrantPolicy = Allow(ActionCreate, userDatamodel.RoleHasPermission{})
	ReadGrantPolicy   = Allow(ActionRead, userDatamodel.RoleHasPermission{})
	DeleteGrantPolicy = Allow(ActionDelete, userDatamodel.RoleHasPermission{})
)

// CheckResult is the response of the permission check endpoints.
type CheckResult struct {
	Action        Action `json:"action"`
	Subject       string `json:"subject"`
	HasPermission bool   `json:"hasPermission"`
}
