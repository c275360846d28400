package postgres

import (
	"fmt"

	"gorm.io/gorm"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/internal/permissions"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// PermissionRepository implements permissions.RepositoryAPI using GORM.
type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permissions.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func orderClause(p pagination.Params) string {
	return fmt.Sprintf("%s %s", p.OrderBy, p.Order)
}

func (r *PermissionRepository) CreatePermission(p *userDatamodel.Permission) error {
	return r.db.Create(p).Error
}

func (r *PermissionRepository) FindPermissions(params pagination.Params, action, subject string) ([]userDatamodel.Permission, int64, error) {
	var (
		perms []userDatamodel.Permission
		total int64
	)

	q := r.db.Model(&userDatamodel.Permission{})
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order(orderClause(params)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&perms).Error
	return perms, total, err
}

func (r *PermissionRepository) GetPermissionByID(id int64) (*userDatamodel.Permission, error) {
	var p userDatamodel.Permission
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, permissions.ErrPermissionNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PermissionRepository) UpdatePermission(p *userDatamodel.Permission) error {
	return r.db.Save(p).Error
}

func (r *PermissionRepository) DeletePermission(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.Permission{}).Error
}

func (r *PermissionRepository) CreateRole(role *userDatamodel.Role) error {
	return r.db.Create(role).Error
}

func (r *PermissionRepository) FindRoles(params pagination.Params, name string) ([]userDatamodel.Role, int64, error) {
	var (
		roles []userDatamodel.Role
		total int64
	)

	q := r.db.Model(&userDatamodel.Role{})
	if name != "" {
		q = q.Where("name = ?", name)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order(orderClause(params)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&roles).Error
	return roles, total, err
}

func (r *PermissionRepository) GetRoleByID(id int64) (*userDatamodel.Role, error) {
	var role userDatamodel.Role
	err := r.db.Preload("Permissions").Where("id = ?", id).First(&role).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, permissions.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *PermissionRepository) UpdateRole(role *userDatamodel.Role) error {
	return r.db.Omit("Permissions").Save(role).Error
}

func (r *PermissionRepository) DeleteRole(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.Role{}).Error
}

func (r *PermissionRepository) CreateGrant(g *userDatamodel.RoleHasPermission) error {
	return r.db.Create(g).Error
}

func (r *PermissionRepository) FindGrants(params pagination.Params, roleID, permissionID int64) ([]userDatamodel.RoleHasPermission, int64, error) {
	var (
		grants []userDatamodel.RoleHasPermission
		total  int64
	)

	q := r.db.Model(&userDatamodel.RoleHasPermission{})
	if roleID > 0 {
		q = q.Where("role_id = ?", roleID)
	}
	if permissionID > 0 {
		q = q.Where("permission_id = ?", permissionID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order(orderClause(params)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&grants).Error
	return grants, total, err
}

func (r *PermissionRepository) GetGrantByID(id int64) (*userDatamodel.RoleHasPermission, error) {
	var g userDatamodel.RoleHasPermission
	err := r.db.Where("id = ?", id).First(&g).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, permissions.ErrGrantNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *PermissionRepository) DeleteGrant(id int64) error {
	return r.db.Where("id = ?", id).Delete(&userDatamodel.RoleHasPermission{}).Error
}

// PermissionsForRole reads the flat grant set for a role. Order and
// duplicates are irrelevant to evaluation.
func (r *PermissionRepository) PermissionsForRole(roleID int64) ([]userDatamodel.Permission, error) {
	var perms []userDatamodel.Permission
	err := r.db.
		Joins("JOIN roles_has_permissions rhp ON rhp.permission_id = permissions.id").
		Where("rhp.role_id = ?", roleID).
		Find(&perms).Error
	return perms, err
}

// GetUserWithRole loads a user with role and role permissions eagerly, the
// shape the ability evaluator is built from.
func (r *PermissionRepository) GetUserWithRole(userID int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Preload("Role.Permissions").Where("id = ?", userID).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, permissions.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
