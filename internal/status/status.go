package status

import (
	"errors"

	statusDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/status"
	"github.com/jalvarado/incident-management/internal/permissions"
)

var (
	ErrNotFound  = errors.New("status not found")
	ErrNameTaken = errors.New("status name already exists")
)

var (
	ManageStatusPolicy = permissions.Allow(permissions.ActionManage, statusDatamodel.Status{})
	ReadStatusPolicy   = permissions.Allow(permissions.ActionRead, statusDatamodel.Status{})
)
