package user

import (
	"errors"
	"strings"
)

type CreateUserDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	RoleID    *int64 `json:"role_id,omitempty"`
}

func (dto CreateUserDTO) Validate() error {
	if strings.TrimSpace(dto.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(dto.Email, "@") {
		return errors.New("email is invalid")
	}
	if strings.TrimSpace(dto.FirstName) == "" {
		return errors.New("first_name is required")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// UpdateUserDTO carries a partial update; nil fields are left untouched.
// Password changes go through the same bcrypt path as creation.
type UpdateUserDTO struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Password  *string `json:"password,omitempty"`
	RoleID    *int64  `json:"role_id,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Email != nil {
		if strings.TrimSpace(*dto.Email) == "" {
			return errors.New("email cannot be empty")
		}
		if !strings.Contains(*dto.Email, "@") {
			return errors.New("email is invalid")
		}
	}
	if dto.FirstName != nil && strings.TrimSpace(*dto.FirstName) == "" {
		return errors.New("first_name cannot be empty")
	}
	if dto.Password != nil && len(*dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
