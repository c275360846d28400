package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

// TokenGenerator creates and verifies tokens. Access and refresh tokens are
// verified on separate paths so one kind is never accepted where the other
// is expected.
type TokenGenerator interface {
	GenerateAccessToken(userID int64, email string) (token string, err error)
	GenerateRefreshToken(userID int64, email string) (token string, err error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims are the JWT claims embedded in issued tokens. The user id travels
// in the registered Subject field.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenGenerator signs tokens with HMAC secrets. Access and refresh
// tokens use distinct secrets, so a long-lived refresh token cannot act as a
// bearer credential and an access token cannot mint new pairs.
type JWTTokenGenerator struct {
	Secret          []byte
	RefreshSecret   []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")
)

// RepositoryAPI is the persistence boundary of the authentication gate.
type RepositoryAPI interface {
	GetPasswordForEmail(email string) (passwordHash string, userID int64, err error)
	GetUserWithRole(userID int64) (*userDatamodel.User, error)
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ResolveUser(userID int64) (*userDatamodel.User, error)
	HashPassword(password string) (string, error)
}
