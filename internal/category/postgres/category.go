package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jalvarado/incident-management/internal/category"
	categoryDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/category"
)

// CategoryRepository implements category.RepositoryAPI using GORM.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAll() ([]categoryDatamodel.Category, error) {
	var categories []categoryDatamodel.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id int64) (*categoryDatamodel.Category, error) {
	var c categoryDatamodel.Category
	err := r.db.First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(name string) (*categoryDatamodel.Category, error) {
	var c categoryDatamodel.Category
	err := r.db.Where("name = ?", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Create(c *categoryDatamodel.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) Update(c *categoryDatamodel.Category) error {
	return r.db.Save(c).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Delete(&categoryDatamodel.Category{}, id).Error
}
