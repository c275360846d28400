package comment

import (
	"errors"
	"strings"
)

type CreateCommentDTO struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (dto CreateCommentDTO) Validate() error {
	if strings.TrimSpace(dto.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}

type UpdateCommentDTO struct {
	Content  *string `json:"content,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (dto UpdateCommentDTO) Validate() error {
	if dto.Content != nil && strings.TrimSpace(*dto.Content) == "" {
		return errors.New("content cannot be empty")
	}
	return nil
}
