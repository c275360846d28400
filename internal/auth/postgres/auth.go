package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jalvarado/incident-management/internal/auth"
	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetPasswordForEmail(email string) (string, int64, error) {
	var user userDatamodel.User
	err := r.db.Select("id", "password").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, auth.ErrUserNotFound
		}
		return "", 0, err
	}
	return user.Password, user.ID, nil
}

// GetUserWithRole loads the user together with its role and the role's
// permission set. Soft-deleted users are excluded by GORM's default scope,
// which is what invalidates tokens of removed accounts.
func (r *AuthRepository) GetUserWithRole(userID int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Preload("Role.Permissions").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
