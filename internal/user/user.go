package user

import (
	"errors"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/internal/permissions"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrRoleNotFound  = errors.New("role not found")
	ErrInvalidUserID = errors.New("invalid user id")
)

// Policies for the user endpoints, checked after authentication and role
// gating.
var (
	CreateUserPolicy = permissions.Allow(permissions.ActionCreate, userDatamodel.User{})
	ReadUserPolicy   = permissions.Allow(permissions.ActionRead, userDatamodel.User{})
	UpdateUserPolicy = permissions.Allow(permissions.ActionUpdate, userDatamodel.User{})
	DeleteUserPolicy = permissions.Allow(permissions.ActionDelete, userDatamodel.User{})
)
