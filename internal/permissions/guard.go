package permissions

import (
	"log/slog"
	"net/http"
)

// RouteConfig is the per-endpoint gate declaration consulted before dispatch:
// whether the endpoint needs an authenticated caller, which role names may
// reach it, and which policy checks must pass.
type RouteConfig struct {
	RequiresAuth  bool
	RequiredRoles []string
	Policies      []PolicyHandler
}

// Wrap composes the gate pipeline around a handler in the fixed order
// authentication, role check, policy check, aborting on the first rejection.
// The authenticate middleware is supplied by the auth module; the role and
// policy gates run even on no-auth routes and tolerate an absent actor.
func (rc RouteConfig) Wrap(authenticate func(http.Handler) http.Handler, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := next

		// wrap inside-out so the outermost gate runs first
		h = RequirePolicies(logger, rc.Policies...)(h)
		if len(rc.RequiredRoles) > 0 {
			h = RequireRoles(logger, rc.RequiredRoles...)(h)
		}
		if rc.RequiresAuth && authenticate != nil {
			h = authenticate(h)
		}

		return h
	}
}
