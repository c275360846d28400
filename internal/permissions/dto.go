package permissions

import "errors"

// CreatePermissionDTO is the payload for creating or replacing a permission.
type CreatePermissionDTO struct {
	Action  string `json:"action"`
	Subject string `json:"subject"`
}

func (dto CreatePermissionDTO) Validate() error {
	if _, err := ParseAction(dto.Action); err != nil {
		return errors.New("action must be one of manage, create, read, update, delete")
	}
	if dto.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

// PatchPermissionDTO carries partial permission updates.
type PatchPermissionDTO struct {
	Action  *string `json:"action,omitempty"`
	Subject *string `json:"subject,omitempty"`
}

func (dto PatchPermissionDTO) Validate() error {
	if dto.Action == nil && dto.Subject == nil {
		return errors.New("at least one of action or subject is required")
	}
	if dto.Action != nil {
		if _, err := ParseAction(*dto.Action); err != nil {
			return errors.New("action must be one of manage, create, read, update, delete")
		}
	}
	if dto.Subject != nil && *dto.Subject == "" {
		return errors.New("subject cannot be empty")
	}
	return nil
}

// CreateRoleDTO is the payload for creating or replacing a role.
type CreateRoleDTO struct {
	Name string `json:"name"`
}

func (dto CreateRoleDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreateRoleHasPermissionDTO grants a permission to a role.
type CreateRoleHasPermissionDTO struct {
	RoleID       int64 `json:"roleId"`
	PermissionID int64 `json:"permissionId"`
}

func (dto CreateRoleHasPermissionDTO) Validate() error {
	if dto.RoleID <= 0 {
		return errors.New("roleId is required")
	}
	if dto.PermissionID <= 0 {
		return errors.New("permissionId is required")
	}
	return nil
}

// CheckPermissionDTO is the query payload for the permission check endpoints.
type CheckPermissionDTO struct {
	Action  string `json:"action"`
	Subject string `json:"subject"`
}

func (dto CheckPermissionDTO) Validate() error {
	if _, err := ParseAction(dto.Action); err != nil {
		return errors.New("action must be one of manage, create, read, update, delete")
	}
	if dto.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}
