package incident

import (
	"log/slog"

	incidentDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/incident"
	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// Filters narrows incident listings.
type Filters struct {
	StatusID   int64
	CategoryID int64
	AssignedTo int64
	OwnerID    int64
}

// RepositoryAPI is the persistence boundary of the incident module.
type RepositoryAPI interface {
	Create(inc *incidentDatamodel.Incident) error
	FindAll(params pagination.Params, filters Filters) ([]incidentDatamodel.Incident, int64, error)
	GetByID(id int64) (*incidentDatamodel.Incident, error)
	Update(inc *incidentDatamodel.Incident) error
	Delete(id int64) error

	CategoryExists(id int64) (bool, error)
	StatusExists(id int64) (bool, error)

	// IdleTechnicians returns technicians with no assigned incidents,
	// oldest account first.
	IdleTechnicians() ([]userDatamodel.User, error)
	// LeastLoadedTechnician returns the technician with the fewest assigned
	// incidents, or nil when no technician exists.
	LeastLoadedTechnician() (*userDatamodel.User, error)
	Assign(incidentID, technicianID int64) error
	AssignedIncidents(technicianID int64) ([]incidentDatamodel.Incident, error)

	StatusCounts() ([]StatusCount, error)
}

// AssignmentResult is what the auto-assign endpoint returns: the chosen
// technician together with everything currently on their plate.
type AssignmentResult struct {
	Technician        *userDatamodel.User          `json:"technician"`
	AssignedIncidents []incidentDatamodel.Incident `json:"assigned_incidents"`
}

type ServiceAPI interface {
	Create(ownerID int64, dto CreateIncidentDTO) (*incidentDatamodel.Incident, error)
	FindAll(params pagination.Params, filters Filters) (pagination.Response[incidentDatamodel.Incident], error)
	GetByID(id int64) (*incidentDatamodel.Incident, error)
	Patch(id int64, dto UpdateIncidentDTO) (*incidentDatamodel.Incident, error)
	Put(id int64, dto CreateIncidentDTO) (*incidentDatamodel.Incident, error)
	Delete(id, actorID int64) error
	AutoAssign(incidentID int64) (*AssignmentResult, error)
	StatusCounts() ([]StatusCount, error)
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

func (s *Service) Create(ownerID int64, dto CreateIncidentDTO) (*incidentDatamodel.Incident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkReferences(dto.CategoryID, dto.StatusID); err != nil {
		return nil, err
	}

	inc := &incidentDatamodel.Incident{
		Title:      dto.Title,
		CategoryID: dto.CategoryID,
		StatusID:   dto.StatusID,
		OwnerID:    ownerID,
	}
	if err := s.repo.Create(inc); err != nil {
		s.logger.Error("failed to create incident", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return s.repo.GetByID(inc.ID)
}

func (s *Service) FindAll(params pagination.Params, filters Filters) (pagination.Response[incidentDatamodel.Incident], error) {
	incidents, total, err := s.repo.FindAll(params, filters)
	if err != nil {
		s.logger.Error("failed to list incidents", "error", err)
		return pagination.Response[incidentDatamodel.Incident]{}, err
	}
	return pagination.NewResponse(incidents, params, total), nil
}

func (s *Service) GetByID(id int64) (*incidentDatamodel.Incident, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Patch(id int64, dto UpdateIncidentDTO) (*incidentDatamodel.Incident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	inc, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Title != nil {
		inc.Title = *dto.Title
	}
	if dto.CategoryID != nil {
		ok, err := s.repo.CategoryExists(*dto.CategoryID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCategoryNotFound
		}
		inc.CategoryID = *dto.CategoryID
	}
	if dto.StatusID != nil {
		ok, err := s.repo.StatusExists(*dto.StatusID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrStatusNotFound
		}
		inc.StatusID = *dto.StatusID
	}
	if dto.AssignedTo != nil {
		inc.AssignedTo = dto.AssignedTo
	}

	if err := s.repo.Update(inc); err != nil {
		s.logger.Error("failed to update incident", "incident_id", id, "error", err)
		return nil, err
	}
	return s.repo.GetByID(id)
}

func (s *Service) Put(id int64, dto CreateIncidentDTO) (*incidentDatamodel.Incident, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.Patch(id, UpdateIncidentDTO{
		Title:      &dto.Title,
		CategoryID: &dto.CategoryID,
		StatusID:   &dto.StatusID,
	})
}

// Delete removes an incident; only its owner may do so.
func (s *Service) Delete(id, actorID int64) error {
	inc, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if inc.OwnerID != actorID {
		return ErrNotOwner
	}
	return s.repo.Delete(id)
}

// AutoAssign picks a technician for an unassigned incident. Idle technicians
// win, oldest account first; otherwise the least-loaded technician takes it.
// Two concurrent calls can race between the load query and the write; the
// incident ends up with one assignee either way, so no lock is taken.
func (s *Service) AutoAssign(incidentID int64) (*AssignmentResult, error) {
	inc, err := s.repo.GetByID(incidentID)
	if err != nil {
		return nil, err
	}
	if inc.AssignedTo != nil {
		return nil, ErrAlreadyAssigned
	}

	technician, err := s.pickTechnician()
	if err != nil {
		return nil, err
	}
	if technician == nil {
		return nil, ErrNoEligibleAssignee
	}

	if err := s.repo.Assign(incidentID, technician.ID); err != nil {
		s.logger.Error("failed to assign incident", "incident_id", incidentID, "technician_id", technician.ID, "error", err)
		return nil, err
	}

	assigned, err := s.repo.AssignedIncidents(technician.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("incident auto-assigned", "incident_id", incidentID, "technician_id", technician.ID)
	return &AssignmentResult{
		Technician:        technician,
		AssignedIncidents: assigned,
	}, nil
}

func (s *Service) pickTechnician() (*userDatamodel.User, error) {
	idle, err := s.repo.IdleTechnicians()
	if err != nil {
		return nil, err
	}
	if len(idle) > 0 {
		return &idle[0], nil
	}
	return s.repo.LeastLoadedTechnician()
}

func (s *Service) StatusCounts() ([]StatusCount, error) {
	return s.repo.StatusCounts()
}

func (s *Service) checkReferences(categoryID, statusID int64) error {
	ok, err := s.repo.CategoryExists(categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryNotFound
	}
	ok, err = s.repo.StatusExists(statusID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStatusNotFound
	}
	return nil
}
