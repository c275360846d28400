package auth

import "strings"

// ValidationError distinguishes bad input from credential failures in the
// login handler.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if strings.TrimSpace(dto.Email) == "" {
		return ValidationError{Message: "email is required"}
	}
	if !strings.Contains(dto.Email, "@") {
		return ValidationError{Message: "email is invalid"}
	}
	if dto.Password == "" {
		return ValidationError{Message: "password is required"}
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return ValidationError{Message: "refresh_token is required"}
	}
	return nil
}
