package permissions

import (
	"log/slog"
	"net/http"

	"github.com/jalvarado/incident-management/internal"
)

// Role names seeded at deploy time.
const (
	RoleAdmin      = "ADMIN"
	RoleTechnician = "TECHNICIAN"
	RoleUser       = "USER"
)

// RequireRoles is the coarse role gate: the actor's role name must be in the
// declared allow-list. An empty list always passes; a request without an
// authenticated actor never matches.
func RequireRoles(logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			actor, ok := internal.ActorFromContext(r.Context())
			if !ok {
				logger.Warn("role check failed: user not found in context", "path", r.URL.Path)
				internal.AppErrorForStatus(http.StatusUnauthorized, "Unauthorized").WriteHTTP(w)
				return
			}

			if actor.Role != nil {
				for _, role := range roles {
					if actor.Role.Name == role {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			logger.WarnContext(r.Context(), "access denied: role not allowed",
				"user_id", actor.ID,
				"required_roles", roles,
				"path", r.URL.Path)
			internal.ErrForbidden.WriteHTTP(w)
		})
	}
}
