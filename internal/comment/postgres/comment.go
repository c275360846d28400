package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jalvarado/incident-management/internal/comment"
	incidentDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/incident"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// CommentRepository implements comment.RepositoryAPI using GORM.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) comment.RepositoryAPI {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *incidentDatamodel.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) FindByIncident(incidentID int64, params pagination.Params) ([]incidentDatamodel.Comment, int64, error) {
	var (
		comments []incidentDatamodel.Comment
		total    int64
	)

	q := r.db.Model(&incidentDatamodel.Comment{}).Where("incident_id = ?", incidentID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order(fmt.Sprintf("%s %s", params.OrderBy, params.Order)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&comments).Error
	return comments, total, err
}

func (r *CommentRepository) GetByID(incidentID, commentID int64) (*incidentDatamodel.Comment, error) {
	var c incidentDatamodel.Comment
	err := r.db.Where("id = ? AND incident_id = ?", commentID, incidentID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, comment.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) Update(c *incidentDatamodel.Comment) error {
	return r.db.Save(c).Error
}

func (r *CommentRepository) Delete(id int64) error {
	return r.db.Delete(&incidentDatamodel.Comment{}, id).Error
}

func (r *CommentRepository) IncidentExists(incidentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&incidentDatamodel.Incident{}).Where("id = ?", incidentID).Count(&count).Error
	return count > 0, err
}
