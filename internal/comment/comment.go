package comment

import (
	"errors"

	incidentDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/incident"
	"github.com/jalvarado/incident-management/internal/permissions"
)

var (
	ErrNotFound         = errors.New("comment not found")
	ErrIncidentNotFound = errors.New("incident not found")
)

var (
	CreateCommentPolicy = permissions.Allow(permissions.ActionCreate, incidentDatamodel.Comment{})
	ReadCommentPolicy   = permissions.Allow(permissions.ActionRead, incidentDatamodel.Comment{})
	UpdateCommentPolicy = permissions.Allow(permissions.ActionUpdate, incidentDatamodel.Comment{})
	DeleteCommentPolicy = permissions.Allow(permissions.ActionDelete, incidentDatamodel.Comment{})
)
