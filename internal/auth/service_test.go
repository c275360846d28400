package auth

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock repository for testing
type mockAuthRepository struct {
	passwords     map[string]string // email -> password hash
	idsByEmail    map[string]int64
	usersByID     map[int64]*userDatamodel.User
	returnError   bool
	errorToReturn error
}

func newMockAuthRepository() *mockAuthRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	adminRole := &userDatamodel.Role{
		ID:   1,
		Name: "ADMIN",
		Permissions: []userDatamodel.Permission{
			{ID: 1, Action: "manage", Subject: "all"},
		},
	}
	userRole := &userDatamodel.Role{
		ID:   3,
		Name: "USER",
		Permissions: []userDatamodel.Permission{
			{ID: 2, Action: "read", Subject: "incidents"},
			{ID: 3, Action: "create", Subject: "incidents"},
		},
	}

	return &mockAuthRepository{
		passwords: map[string]string{
			"user@example.com":  string(hashedPassword),
			"admin@example.com": string(hashedPassword),
		},
		idsByEmail: map[string]int64{
			"user@example.com":  1,
			"admin@example.com": 2,
		},
		usersByID: map[int64]*userDatamodel.User{
			1: {ID: 1, Email: "user@example.com", Role: userRole},
			2: {ID: 2, Email: "admin@example.com", Role: adminRole},
		},
	}
}

func (m *mockAuthRepository) GetPasswordForEmail(email string) (string, int64, error) {
	if m.returnError {
		return "", 0, m.errorToReturn
	}

	if hash, exists := m.passwords[email]; exists {
		if userID, idExists := m.idsByEmail[email]; idExists {
			return hash, userID, nil
		}
	}
	return "", 0, ErrUserNotFound
}

func (m *mockAuthRepository) GetUserWithRole(userID int64) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}

	if user, exists := m.usersByID[userID]; exists {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (m *mockAuthRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockAuthRepository
		tokenGen      *JWTTokenGenerator
		secret        = []byte("test-secret-key-at-least-32-bytes-long")
		refreshSecret = []byte("test-refresh-secret-32-bytes-or-more!")
		accessTTL     = 15 * time.Minute
		refreshTTL    = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokenGen = &JWTTokenGenerator{
			Secret:          secret,
			RefreshSecret:   refreshSecret,
			AccessTokenTTL:  accessTTL,
			RefreshTokenTTL: refreshTTL,
		}
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, slog.Default())
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				// Given
				dto := LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should carry the user id in the subject claim", func() {
				// Given
				dto := LoginDTO{
					Email:    "admin@example.com",
					Password: "correct_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.Subject).To(gomega.Equal("2"))
				gomega.Expect(claims.Email).To(gomega.Equal("admin@example.com"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return error for unknown email", func() {
				// Given
				dto := LoginDTO{
					Email:    "nonexistent@example.com",
					Password: "any_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for wrong password", func() {
				// Given
				dto := LoginDTO{
					Email:    "user@example.com",
					Password: "wrong_password",
				}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return the same error for repository failures", func() {
				// Given
				mockRepo.setError(errors.New("database error"))
				dto := LoginDTO{
					Email:    "user@example.com",
					Password: "correct_password",
				}

				// When
				_, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when input validation fails", func() {
			ginkgo.It("should return validation error for empty email", func() {
				// Given
				dto := LoginDTO{Email: "", Password: "password"}

				// When
				tokens, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return validation error for empty password", func() {
				// Given
				dto := LoginDTO{Email: "user@example.com", Password: ""}

				// When
				_, err := service.Authenticate(dto)

				// Then
				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("password is required"))
			})
		})
	})

	ginkgo.Describe("ValidateAccessToken", func() {
		ginkgo.It("should reject a tampered token", func() {
			// Given
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			_, err = service.ValidateAccessToken(tokens.AccessToken + "tampered")

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an expired token", func() {
			// Given
			expiredGen := &JWTTokenGenerator{
				Secret:          secret,
				RefreshSecret:   refreshSecret,
				AccessTokenTTL:  -time.Minute,
				RefreshTokenTTL: refreshTTL,
			}
			token, err := expiredGen.GenerateAccessToken(1, "user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			_, err = service.ValidateAccessToken(token)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrTokenExpired))
		})

		ginkgo.It("should reject a refresh token used as a bearer credential", func() {
			// Given
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When: the long-lived token is presented where an access
			// token is expected
			_, err = service.ValidateAccessToken(tokens.RefreshToken)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject a token signed with a different secret", func() {
			// Given
			otherGen := &JWTTokenGenerator{
				Secret:          []byte("another-secret-key-32-bytes-min!"),
				RefreshSecret:   refreshSecret,
				AccessTokenTTL:  accessTTL,
				RefreshTokenTTL: refreshTTL,
			}
			token, err := otherGen.GenerateAccessToken(1, "user@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			_, err = service.ValidateAccessToken(token)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a new pair for a valid refresh token", func() {
			// Given
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(refreshed.RefreshToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should reject refresh tokens of deleted users", func() {
			// Given: token issued while the user existed
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			delete(mockRepo.usersByID, 1)

			// When
			_, err = service.RefreshTokens(tokens.RefreshToken)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject an access token presented as a refresh token", func() {
			// Given
			tokens, err := service.Authenticate(LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When: a stolen 15-minute access token must not be able to
			// mint a fresh pair
			_, err = service.RefreshTokens(tokens.AccessToken)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})

		ginkgo.It("should reject garbage input", func() {
			// When
			_, err := service.RefreshTokens("not-a-jwt")

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrInvalidToken))
		})
	})

	ginkgo.Describe("ResolveUser", func() {
		ginkgo.It("should load the role and its permissions", func() {
			// When
			user, err := service.ResolveUser(2)

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.Role).ToNot(gomega.BeNil())
			gomega.Expect(user.Role.Name).To(gomega.Equal("ADMIN"))
			gomega.Expect(user.Role.Permissions).To(gomega.HaveLen(1))
		})

		ginkgo.It("should surface not-found for missing users", func() {
			// When
			_, err := service.ResolveUser(999)

			// Then
			gomega.Expect(err).To(gomega.Equal(ErrUserNotFound))
		})
	})

	ginkgo.Describe("HashPassword", func() {
		ginkgo.It("should produce a hash that verifies against the input", func() {
			// When
			hash, err := service.HashPassword("s3cret-password")

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-password"))).To(gomega.Succeed())
		})
	})
})
