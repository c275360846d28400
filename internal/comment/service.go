package comment

import (
	"log/slog"

	incidentDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/incident"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// RepositoryAPI is the persistence boundary of the comment module.
type RepositoryAPI interface {
	Create(c *incidentDatamodel.Comment) error
	FindByIncident(incidentID int64, params pagination.Params) ([]incidentDatamodel.Comment, int64, error)
	GetByID(incidentID, commentID int64) (*incidentDatamodel.Comment, error)
	Update(c *incidentDatamodel.Comment) error
	Delete(id int64) error
	IncidentExists(incidentID int64) (bool, error)
}

type ServiceAPI interface {
	Create(incidentID, authorID int64, dto CreateCommentDTO) (*incidentDatamodel.Comment, error)
	FindByIncident(incidentID int64, params pagination.Params) (pagination.Response[incidentDatamodel.Comment], error)
	GetByID(incidentID, commentID int64) (*incidentDatamodel.Comment, error)
	Patch(incidentID, commentID int64, dto UpdateCommentDTO) (*incidentDatamodel.Comment, error)
	Delete(incidentID, commentID int64) error
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

func (s *Service) Create(incidentID, authorID int64, dto CreateCommentDTO) (*incidentDatamodel.Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.repo.IncidentExists(incidentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIncidentNotFound
	}

	c := &incidentDatamodel.Comment{
		Content:    dto.Content,
		ImageURL:   dto.ImageURL,
		IncidentID: incidentID,
		UserID:     authorID,
	}
	if err := s.repo.Create(c); err != nil {
		s.logger.Error("failed to create comment", "incident_id", incidentID, "error", err)
		return nil, err
	}
	return c, nil
}

func (s *Service) FindByIncident(incidentID int64, params pagination.Params) (pagination.Response[incidentDatamodel.Comment], error) {
	ok, err := s.repo.IncidentExists(incidentID)
	if err != nil {
		return pagination.Response[incidentDatamodel.Comment]{}, err
	}
	if !ok {
		return pagination.Response[incidentDatamodel.Comment]{}, ErrIncidentNotFound
	}

	comments, total, err := s.repo.FindByIncident(incidentID, params)
	if err != nil {
		s.logger.Error("failed to list comments", "incident_id", incidentID, "error", err)
		return pagination.Response[incidentDatamodel.Comment]{}, err
	}
	return pagination.NewResponse(comments, params, total), nil
}

func (s *Service) GetByID(incidentID, commentID int64) (*incidentDatamodel.Comment, error) {
	return s.repo.GetByID(incidentID, commentID)
}

func (s *Service) Patch(incidentID, commentID int64, dto UpdateCommentDTO) (*incidentDatamodel.Comment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(incidentID, commentID)
	if err != nil {
		return nil, err
	}
	if dto.Content != nil {
		c.Content = *dto.Content
	}
	if dto.ImageURL != nil {
		c.ImageURL = dto.ImageURL
	}
	if err := s.repo.Update(c); err != nil {
		s.logger.Error("failed to update comment", "comment_id", commentID, "error", err)
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(incidentID, commentID int64) error {
	if _, err := s.repo.GetByID(incidentID, commentID); err != nil {
		return err
	}
	return s.repo.Delete(commentID)
}
