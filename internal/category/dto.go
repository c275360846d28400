package category

import (
	"errors"
	"strings"
)

type CategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto CategoryDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
