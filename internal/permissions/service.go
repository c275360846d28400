package permissions

import (
	"log/slog"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// RepositoryAPI is the persistence boundary of the permission catalog.
type RepositoryAPI interface {
	CreatePermission(p *userDatamodel.Permission) error
	FindPermissions(params pagination.Params, action, subject string) ([]userDatamodel.Permission, int64, error)
	GetPermissionByID(id int64) (*userDatamodel.Permission, error)
	UpdatePermission(p *userDatamodel.Permission) error
	DeletePermission(id int64) error

	CreateRole(r *userDatamodel.Role) error
	FindRoles(params pagination.Params, name string) ([]userDatamodel.Role, int64, error)
	GetRoleByID(id int64) (*userDatamodel.Role, error)
	UpdateRole(r *userDatamodel.Role) error
	DeleteRole(id int64) error

	CreateGrant(g *userDatamodel.RoleHasPermission) error
	FindGrants(params pagination.Params, roleID, permissionID int64) ([]userDatamodel.RoleHasPermission, int64, error)
	GetGrantByID(id int64) (*userDatamodel.RoleHasPermission, error)
	DeleteGrant(id int64) error

	PermissionsForRole(roleID int64) ([]userDatamodel.Permission, error)
	GetUserWithRole(userID int64) (*userDatamodel.User, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ---- permissions ----

func (s *Service) CreatePermission(dto CreatePermissionDTO) (*userDatamodel.Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &userDatamodel.Permission{
		Action:  dto.Action,
		Subject: dto.Subject,
	}
	if err := s.repo.CreatePermission(p); err != nil {
		s.logger.Error("failed to create permission", "error", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) FindPermissions(params pagination.Params, action, subject string) (pagination.Response[userDatamodel.Permission], error) {
	perms, total, err := s.repo.FindPermissions(params, action, subject)
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return pagination.Response[userDatamodel.Permission]{}, err
	}
	return pagination.NewResponse(perms, params, total), nil
}

func (s *Service) GetPermission(id int64) (*userDatamodel.Permission, error) {
	return s.repo.GetPermissionByID(id)
}

func (s *Service) PatchPermission(id int64, dto PatchPermissionDTO) (*userDatamodel.Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPermissionByID(id)
	if err != nil {
		return nil, err
	}
	if dto.Action != nil {
		p.Action = *dto.Action
	}
	if dto.Subject != nil {
		p.Subject = *dto.Subject
	}
	if err := s.repo.UpdatePermission(p); err != nil {
		s.logger.Error("failed to update permission", "permission_id", id, "error", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePermission(id int64, dto CreatePermissionDTO) (*userDatamodel.Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetPermissionByID(id)
	if err != nil {
		return nil, err
	}
	p.Action = dto.Action
	p.Subject = dto.Subject
	if err := s.repo.UpdatePermission(p); err != nil {
		s.logger.Error("failed to update permission", "permission_id", id, "error", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePermission(id int64) error {
	if _, err := s.repo.GetPermissionByID(id); err != nil {
		return err
	}
	return s.repo.DeletePermission(id)
}

// ---- roles ----

func (s *Service) CreateRole(dto CreateRoleDTO) (*userDatamodel.Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r := &userDatamodel.Role{Name: dto.Name}
	if err := s.repo.CreateRole(r); err != nil {
		s.logger.Error("failed to create role", "error", err)
		return nil, err
	}
	return r, nil
}

func (s *Service) FindRoles(params pagination.Params, name string) (pagination.Response[userDatamodel.Role], error) {
	roles, total, err := s.repo.FindRoles(params, name)
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return pagination.Response[userDatamodel.Role]{}, err
	}
	return pagination.NewResponse(roles, params, total), nil
}

func (s *Service) GetRole(id int64) (*userDatamodel.Role, error) {
	return s.repo.GetRoleByID(id)
}

func (s *Service) UpdateRole(id int64, dto CreateRoleDTO) (*userDatamodel.Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	r, err := s.repo.GetRoleByID(id)
	if err != nil {
		return nil, err
	}
	r.Name = dto.Name
	if err := s.repo.UpdateRole(r); err != nil {
		s.logger.Error("failed to update role", "role_id", id, "error", err)
		return nil, err
	}
	return r, nil
}

func (s *Service) DeleteRole(id int64) error {
	if _, err := s.repo.GetRoleByID(id); err != nil {
		return err
	}
	return s.repo.DeleteRole(id)
}

// ---- role permission grants ----

func (s *Service) CreateGrant(dto CreateRoleHasPermissionDTO) (*userDatamodel.RoleHasPermission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetRoleByID(dto.RoleID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetPermissionByID(dto.PermissionID); err != nil {
		return nil, err
	}

	g := &userDatamodel.RoleHasPermission{
		RoleID:       dto.RoleID,
		PermissionID: dto.PermissionID,
	}
	if err := s.repo.CreateGrant(g); err != nil {
		s.logger.Error("failed to create role permission grant", "error", err)
		return nil, err
	}
	return g, nil
}

func (s *Service) FindGrants(params pagination.Params, roleID, permissionID int64) (pagination.Response[userDatamodel.RoleHasPermission], error) {
	grants, total, err := s.repo.FindGrants(params, roleID, permissionID)
	if err != nil {
		s.logger.Error("failed to list role permission grants", "error", err)
		return pagination.Response[userDatamodel.RoleHasPermission]{}, err
	}
	return pagination.NewResponse(grants, params, total), nil
}

func (s *Service) GetGrant(id int64) (*userDatamodel.RoleHasPermission, error) {
	return s.repo.GetGrantByID(id)
}

func (s *Service) DeleteGrant(id int64) error {
	if _, err := s.repo.GetGrantByID(id); err != nil {
		return err
	}
	return s.repo.DeleteGrant(id)
}

// ---- ability queries ----

// PermissionsForUser lists the grant tuples effective for a user through
// their role.
func (s *Service) PermissionsForUser(userID int64) ([]userDatamodel.Permission, error) {
	u, err := s.repo.GetUserWithRole(userID)
	if err != nil {
		return nil, err
	}
	if u.Role == nil {
		return []userDatamodel.Permission{}, nil
	}
	return u.Role.Permissions, nil
}

// CheckUserPermission builds a fresh ability for the user and evaluates one
// (action, subject) pair. The ability is never cached, so grant changes take
// effect on the next call.
func (s *Service) CheckUserPermission(userID int64, dto CheckPermissionDTO) (*CheckResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetUserWithRole(userID)
	if err != nil {
		return nil, err
	}

	action, _ := ParseAction(dto.Action)
	ability := NewAbility(u)

	return &CheckResult{
		Action:        action,
		Subject:       dto.Subject,
		HasPermission: ability.Can(action, SubjectName(dto.Subject)),
	}, nil
}
