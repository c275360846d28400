package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	incidentDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/incident"
	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/internal/incident"
	"github.com/jalvarado/incident-management/internal/permissions"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// IncidentRepository implements incident.RepositoryAPI using GORM.
type IncidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) incident.RepositoryAPI {
	return &IncidentRepository{db: db}
}

func orderClause(p pagination.Params) string {
	return fmt.Sprintf("%s %s", p.OrderBy, p.Order)
}

func (r *IncidentRepository) Create(inc *incidentDatamodel.Incident) error {
	return r.db.Create(inc).Error
}

func (r *IncidentRepository) FindAll(params pagination.Params, filters incident.Filters) ([]incidentDatamodel.Incident, int64, error) {
	var (
		incidents []incidentDatamodel.Incident
		total     int64
	)

	q := r.db.Model(&incidentDatamodel.Incident{})
	if filters.StatusID > 0 {
		q = q.Where("status_id = ?", filters.StatusID)
	}
	if filters.CategoryID > 0 {
		q = q.Where("category_id = ?", filters.CategoryID)
	}
	if filters.AssignedTo > 0 {
		q = q.Where("assigned_to = ?", filters.AssignedTo)
	}
	if filters.OwnerID > 0 {
		q = q.Where("owner_id = ?", filters.OwnerID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Owner").
		Preload("Assignee").
		Order(orderClause(params)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&incidents).Error
	return incidents, total, err
}

func (r *IncidentRepository) GetByID(id int64) (*incidentDatamodel.Incident, error) {
	var inc incidentDatamodel.Incident
	err := r.db.Preload("Owner").
		Preload("Assignee").
		Preload("Comments").
		First(&inc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, incident.ErrNotFound
		}
		return nil, err
	}
	return &inc, nil
}

func (r *IncidentRepository) Update(inc *incidentDatamodel.Incident) error {
	return r.db.Omit("Owner", "Assignee", "Comments").Save(inc).Error
}

func (r *IncidentRepository) Delete(id int64) error {
	return r.db.Delete(&incidentDatamodel.Incident{}, id).Error
}

func (r *IncidentRepository) CategoryExists(id int64) (bool, error) {
	var count int64
	err := r.db.Table("categories").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *IncidentRepository) StatusExists(id int64) (bool, error) {
	var count int64
	err := r.db.Table("status").Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// IdleTechnicians lists technicians with no assigned incidents, oldest
// account first, which makes the pick deterministic.
func (r *IncidentRepository) IdleTechnicians() ([]userDatamodel.User, error) {
	var techs []userDatamodel.User
	err := r.db.Model(&userDatamodel.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", permissions.RoleTechnician).
		Where("NOT EXISTS (SELECT 1 FROM incidents WHERE incidents.assigned_to = users.id AND incidents.deleted_at IS NULL)").
		Order("users.created_at ASC").
		Find(&techs).Error
	return techs, err
}

func (r *IncidentRepository) LeastLoadedTechnician() (*userDatamodel.User, error) {
	var techs []userDatamodel.User
	err := r.db.Model(&userDatamodel.User{}).
		Select("users.*").
		Joins("JOIN roles ON roles.id = users.role_id").
		Joins("LEFT JOIN incidents ON incidents.assigned_to = users.id AND incidents.deleted_at IS NULL").
		Where("roles.name = ?", permissions.RoleTechnician).
		Group("users.id").
		Order("COUNT(incidents.id) ASC, users.created_at ASC").
		Limit(1).
		Find(&techs).Error
	if err != nil {
		return nil, err
	}
	if len(techs) == 0 {
		return nil, nil
	}
	return &techs[0], nil
}

func (r *IncidentRepository) Assign(incidentID, technicianID int64) error {
	return r.db.Model(&incidentDatamodel.Incident{}).
		Where("id = ?", incidentID).
		Update("assigned_to", technicianID).Error
}

func (r *IncidentRepository) AssignedIncidents(technicianID int64) ([]incidentDatamodel.Incident, error) {
	var incidents []incidentDatamodel.Incident
	err := r.db.Where("assigned_to = ?", technicianID).
		Order("created_at ASC").
		Find(&incidents).Error
	return incidents, err
}

func (r *IncidentRepository) StatusCounts() ([]incident.StatusCount, error) {
	var counts []incident.StatusCount
	err := r.db.Table("incidents").
		Select("incidents.status_id AS status_id, status.name AS name, COUNT(*) AS count").
		Joins("JOIN status ON status.id = incidents.status_id").
		Where("incidents.deleted_at IS NULL").
		Group("incidents.status_id, status.name").
		Order("incidents.status_id ASC").
		Scan(&counts).Error
	return counts, err
}
