package status

import (
	"log/slog"

	statusDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/status"
)

type RepositoryAPI interface {
	GetAll() ([]statusDatamodel.Status, error)
	GetByID(id int64) (*statusDatamodel.Status, error)
	GetByName(name string) (*statusDatamodel.Status, error)
	Create(st *statusDatamodel.Status) error
	Update(st *statusDatamodel.Status) error
	Delete(id int64) error
}

type ServiceAPI interface {
	GetAll() ([]statusDatamodel.Status, error)
	GetByID(id int64) (*statusDatamodel.Status, error)
	Create(dto StatusDTO) (*statusDatamodel.Status, error)
	Update(id int64, dto StatusDTO) (*statusDatamodel.Status, error)
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

func (s *Service) GetAll() ([]statusDatamodel.Status, error) {
	statuses, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list statuses", "error", err)
		return nil, err
	}
	return statuses, nil
}

func (s *Service) GetByID(id int64) (*statusDatamodel.Status, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Create(dto StatusDTO) (*statusDatamodel.Status, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
		return nil, ErrNameTaken
	}

	st := &statusDatamodel.Status{
		Name:        dto.Name,
		Description: dto.Description,
	}
	if err := s.repo.Create(st); err != nil {
		s.logger.Error("failed to create status", "name", dto.Name, "error", err)
		return nil, err
	}
	return st, nil
}

func (s *Service) Update(id int64, dto StatusDTO) (*statusDatamodel.Status, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	st, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dto.Name != st.Name {
		if existing, err := s.repo.GetByName(dto.Name); err == nil && existing != nil {
			return nil, ErrNameTaken
		}
	}
	st.Name = dto.Name
	st.Description = dto.Description
	if err := s.repo.Update(st); err != nil {
		s.logger.Error("failed to update status", "status_id", id, "error", err)
		return nil, err
	}
	return st, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
