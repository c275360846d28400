package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jalvarado/incident-management/internal"
	"github.com/jalvarado/incident-management/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Service:     service,
	}
}

// Login godoc
// @Summary Authenticate a user
// @Description Exchanges email and password for an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginDTO true "login credentials"
// @Success 200 {object} AuthTokens
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		var valErr ValidationError
		if errors.As(err, &valErr) {
			h.WriteError(w, http.StatusBadRequest, valErr.Message)
			return
		}
		h.WriteAppError(w, internal.ErrInvalidCredentials)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// RefreshToken godoc
// @Summary Refresh an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshTokenDTO true "refresh token"
// @Success 200 {object} AuthTokens
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/refresh [post]
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			h.WriteAppError(w, internal.ErrTokenExpired)
			return
		}
		h.WriteAppError(w, internal.ErrInvalidToken)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout is stateless: tokens are not tracked server side, so logout only
// acknowledges the request and clients discard their copies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the resolved user for the current request.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	h.WriteJSON(w, http.StatusOK, actor)
}

// AuthMiddleware validates the bearer token and resolves the full user,
// role and permissions included, into the request context. Every failure
// mode answers with the same 401 so the response does not reveal whether
// the token was malformed, expired, or references a deleted account.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := h.ExtractTokenFromHeader(r)
		if tokenString == "" {
			h.unauthorized(w, r, "missing bearer token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(tokenString)
		if err != nil {
			h.unauthorized(w, r, "token validation failed")
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			h.unauthorized(w, r, "malformed subject claim")
			return
		}

		actor, err := h.Service.ResolveUser(userID)
		if err != nil {
			h.unauthorized(w, r, "user resolution failed")
			return
		}

		ctx := internal.ContextWithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	h.Logger.Debug("authentication rejected", "path", r.URL.Path, "reason", reason)
	h.WriteError(w, http.StatusUnauthorized, "unauthorized")
}
