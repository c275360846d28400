package user

import (
	"log/slog"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

// RepositoryAPI is the persistence boundary of the user module.
type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	FindAll(params pagination.Params, email string) ([]userDatamodel.User, int64, error)
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	Delete(id int64) error
	RoleExists(roleID int64) (bool, error)
}

// PasswordHasher decouples the user module from the auth package; the auth
// service satisfies it.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type ServiceAPI interface {
	Create(dto CreateUserDTO) (*userDatamodel.User, error)
	FindAll(params pagination.Params, email string) (pagination.Response[userDatamodel.User], error)
	GetByID(id int64) (*userDatamodel.User, error)
	Patch(id int64, dto UpdateUserDTO) (*userDatamodel.User, error)
	Put(id int64, dto CreateUserDTO) (*userDatamodel.User, error)
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) Create(dto CreateUserDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	if dto.RoleID != nil {
		ok, err := s.repo.RoleExists(*dto.RoleID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRoleNotFound
		}
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, err
	}

	u := &userDatamodel.User{
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Password:  hash,
		RoleID:    dto.RoleID,
	}
	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}

	return s.repo.GetByID(u.ID)
}

func (s *Service) FindAll(params pagination.Params, email string) (pagination.Response[userDatamodel.User], error) {
	users, total, err := s.repo.FindAll(params, email)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return pagination.Response[userDatamodel.User]{}, err
	}
	return pagination.NewResponse(users, params, total), nil
}

func (s *Service) GetByID(id int64) (*userDatamodel.User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Patch(id int64, dto UpdateUserDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Email != nil && *dto.Email != u.Email {
		if existing, err := s.repo.GetByEmail(*dto.Email); err == nil && existing != nil {
			return nil, ErrEmailTaken
		}
		u.Email = *dto.Email
	}
	if dto.FirstName != nil {
		u.FirstName = *dto.FirstName
	}
	if dto.LastName != nil {
		u.LastName = *dto.LastName
	}
	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if dto.RoleID != nil {
		ok, err := s.repo.RoleExists(*dto.RoleID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRoleNotFound
		}
		u.RoleID = dto.RoleID
	}

	if err := s.repo.Update(u); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Put replaces the mutable fields wholesale; semantics match Patch with every
// field present.
func (s *Service) Put(id int64, dto CreateUserDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.Patch(id, UpdateUserDTO{
		Email:     &dto.Email,
		FirstName: &dto.FirstName,
		LastName:  &dto.LastName,
		Password:  &dto.Password,
		RoleID:    dto.RoleID,
	})
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
