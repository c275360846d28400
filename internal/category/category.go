package category

import (
	"errors"

	categoryDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/category"
	"github.com/jalvarado/incident-management/internal/permissions"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrNameTaken = errors.New("category name already exists")
)

var (
	ManageCategoryPolicy = permissions.Allow(permissions.ActionManage, categoryDatamodel.Category{})
	ReadCategoryPolicy   = permissions.Allow(permissions.ActionRead, categoryDatamodel.Category{})
)
