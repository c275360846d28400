package incident

import (
	"errors"

	incidentDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/incident"
	"github.com/jalvarado/incident-management/internal/permissions"
)

var (
	ErrNotFound           = errors.New("incident not found")
	ErrAlreadyAssigned    = errors.New("incident already assigned")
	ErrNoEligibleAssignee = errors.New("no user available to assign incident")
	ErrNotOwner           = errors.New("only the incident owner can delete it")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrStatusNotFound     = errors.New("status not found")
)

// Policies for the incident endpoints.
var (
	CreateIncidentPolicy = permissions.Allow(permissions.ActionCreate, incidentDatamodel.Incident{})
	ReadIncidentPolicy   = permissions.Allow(permissions.ActionRead, incidentDatamodel.Incident{})
	UpdateIncidentPolicy = permissions.Allow(permissions.ActionUpdate, incidentDatamodel.Incident{})
	DeleteIncidentPolicy = permissions.Allow(permissions.ActionDelete, incidentDatamodel.Incident{})
)

// StatusCount is one row of the status aggregate endpoint.
type StatusCount struct {
	StatusID int64  `json:"statusId"`
	Name     string `json:"name"`
	Count    int64  `json:"count"`
}
