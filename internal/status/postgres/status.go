package postgres

import (
	"errors"

	"gorm.io/gorm"

	statusDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/status"
	"github.com/jalvarado/incident-management/internal/status"
)

// StatusRepository implements status.RepositoryAPI using GORM.
type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) status.RepositoryAPI {
	return &StatusRepository{db: db}
}

func (r *StatusRepository) GetAll() ([]statusDatamodel.Status, error) {
	var statuses []statusDatamodel.Status
	err := r.db.Order("id ASC").Find(&statuses).Error
	return statuses, err
}

func (r *StatusRepository) GetByID(id int64) (*statusDatamodel.Status, error) {
	var st statusDatamodel.Status
	err := r.db.First(&st, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *StatusRepository) GetByName(name string) (*statusDatamodel.Status, error) {
	var st statusDatamodel.Status
	err := r.db.Where("name = ?", name).First(&st).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, status.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *StatusRepository) Create(st *statusDatamodel.Status) error {
	return r.db.Create(st).Error
}

func (r *StatusRepository) Update(st *statusDatamodel.Status) error {
	return r.db.Save(st).Error
}

func (r *StatusRepository) Delete(id int64) error {
	return r.db.Delete(&statusDatamodel.Status{}, id).Error
}
