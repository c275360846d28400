package incident

import (
	"errors"
	"strings"
)

type CreateIncidentDTO struct {
	Title      string `json:"title"`
	CategoryID int64  `json:"category_id"`
	StatusID   int64  `json:"status_id"`
}

func (dto CreateIncidentDTO) Validate() error {
	if strings.TrimSpace(dto.Title) == "" {
		return errors.New("title is required")
	}
	if dto.CategoryID <= 0 {
		return errors.New("category_id is required")
	}
	if dto.StatusID <= 0 {
		return errors.New("status_id is required")
	}
	return nil
}

type UpdateIncidentDTO struct {
	Title      *string `json:"title,omitempty"`
	CategoryID *int64  `json:"category_id,omitempty"`
	StatusID   *int64  `json:"status_id,omitempty"`
	AssignedTo *int64  `json:"assigned_to,omitempty"`
}

func (dto UpdateIncidentDTO) Validate() error {
	if dto.Title != nil && strings.TrimSpace(*dto.Title) == "" {
		return errors.New("title cannot be empty")
	}
	if dto.CategoryID != nil && *dto.CategoryID <= 0 {
		return errors.New("category_id is invalid")
	}
	if dto.StatusID != nil && *dto.StatusID <= 0 {
		return errors.New("status_id is invalid")
	}
	return nil
}
