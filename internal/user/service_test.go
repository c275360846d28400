package user

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	users  map[int64]*userDatamodel.User
	roles  map[int64]bool
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	roleID := int64(3)
	return &mockUserRepository{
		users: map[int64]*userDatamodel.User{
			1: {ID: 1, Email: "existing@example.com", FirstName: "Existing", RoleID: &roleID},
		},
		roles:  map[int64]bool{1: true, 2: true, 3: true},
		nextID: 2,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) FindAll(params pagination.Params, email string) ([]userDatamodel.User, int64, error) {
	var out []userDatamodel.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) RoleExists(roleID int64) (bool, error) {
	return m.roles[roleID], nil
}

type mockHasher struct {
	failing bool
}

func (m *mockHasher) HashPassword(password string) (string, error) {
	if m.failing {
		return "", errors.New("hash failure")
	}
	return "hashed:" + password, nil
}

var _ = ginkgo.Describe("UserService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		hasher   *mockHasher
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		hasher = &mockHasher{}
		service = NewService(mockRepo, hasher, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should store the bcrypt hash, never the raw password", func() {
			// Given
			dto := CreateUserDTO{
				Email:     "new@example.com",
				FirstName: "New",
				LastName:  "User",
				Password:  "plaintext-pass",
			}

			// When
			created, err := service.Create(dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created.Password).To(gomega.Equal("hashed:plaintext-pass"))
		})

		ginkgo.It("should reject duplicate emails", func() {
			// Given
			dto := CreateUserDTO{
				Email:     "existing@example.com",
				FirstName: "Dup",
				Password:  "plaintext-pass",
			}

			// When
			_, err := service.Create(dto)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrEmailTaken))
		})

		ginkgo.It("should reject unknown role ids", func() {
			// Given
			badRole := int64(99)
			dto := CreateUserDTO{
				Email:     "new@example.com",
				FirstName: "New",
				Password:  "plaintext-pass",
				RoleID:    &badRole,
			}

			// When
			_, err := service.Create(dto)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrRoleNotFound))
		})

		ginkgo.It("should reject short passwords", func() {
			// Given
			dto := CreateUserDTO{
				Email:     "new@example.com",
				FirstName: "New",
				Password:  "short",
			}

			// When
			_, err := service.Create(dto)

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("password"))
		})
	})

	ginkgo.Describe("Patch", func() {
		ginkgo.It("should update only the provided fields", func() {
			// Given
			firstName := "Renamed"
			dto := UpdateUserDTO{FirstName: &firstName}

			// When
			updated, err := service.Patch(1, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.FirstName).To(gomega.Equal("Renamed"))
			gomega.Expect(updated.Email).To(gomega.Equal("existing@example.com"))
		})

		ginkgo.It("should rehash when the password changes", func() {
			// Given
			password := "new-password-123"
			dto := UpdateUserDTO{Password: &password}

			// When
			updated, err := service.Patch(1, dto)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Password).To(gomega.Equal("hashed:new-password-123"))
		})

		ginkgo.It("should return not found for missing users", func() {
			// When
			_, err := service.Patch(999, UpdateUserDTO{})

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should remove an existing user", func() {
			// When
			err := service.Delete(1)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.GetByID(1)
			gomega.Expect(err).To(gomega.Equal(ErrNotFound))
		})

		ginkgo.It("should return not found for missing users", func() {
			// When
			err := service.Delete(999)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrNotFound))
		})
	})
})
