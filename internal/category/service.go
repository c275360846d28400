package category

import (
	"log/slog"

	categoryDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll() ([]categoryDatamodel.Category, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	GetByName(name string) (*categoryDatamodel.Category, error)
	Create(c *categoryDatamodel.Category) error
	Update(c *categoryDatamodel.Category) error
	Delete(id int64) error
}

type ServiceAPI interface {
	GetAll() ([]categoryDatamodel.Category, error)
	GetByID(id int64) (*categoryDatamodel.Category, error)
	Create(dto CategoryDTO) (*categoryDatamodel.Category, error)
	Update(id int64, dto CategoryDTO) (*categoryDatamodel.Category, error)
	Delete(id int64) error
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

func (s *Service) GetAll() ([]categoryDatamodel.Category, error) {
	categories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, err
	}
	return categories, nil
}

func (s *Service) GetByID(id int64) (*categoryDatamodel.Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(dto CategoryDTO) (*categoryDatamodel.Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, ErrNameTaken
	}

	c := &categoryDatamodel.Category{
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create category", "name", dto.Name, "error", err)
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(id int64, dto CategoryDTO) (*categoryDatamodel.Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dto.Name != c.Name {
		if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
			return nil, ErrNameTaken
		}
	}
	c.Name = dto.Name
	c.Description = dto.Description
	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update category", "category_id", id, "error", err)
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
