package status

import (
	"errors"
	"strings"
)

type StatusDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (dto StatusDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}
