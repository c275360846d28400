package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/internal/user"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// UserRepository implements user.RepositoryAPI using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func orderClause(p pagination.Params) string {
	return fmt.Sprintf("%s %s", p.OrderBy, p.Order)
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) FindAll(params pagination.Params, email string) ([]userDatamodel.User, int64, error) {
	var (
		users []userDatamodel.User
		total int64
	)

	q := r.db.Model(&userDatamodel.User{})
	if email != "" {
		q = q.Where("email ILIKE ?", "%"+email+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Role").
		Order(orderClause(params)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Preload("Role.Permissions").First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}

// Delete soft-deletes via gorm.DeletedAt, which also invalidates the user's
// tokens on the next resolution.
func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&userDatamodel.User{}, id).Error
}

func (r *UserRepository) RoleExists(roleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.Role{}).Where("id = ?", roleID).Count(&count).Error
	return count > 0, err
}
