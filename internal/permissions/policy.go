package permissions

import (
	"log/slog"
	"net/http"

	"github.com/jalvarado/incident-management/internal"
)

// PolicyHandler encapsulates one declared (action, subject) requirement for
// an endpoint.
type PolicyHandler interface {
	Handle(ability *Ability) bool
}

// PolicyFunc adapts a plain predicate to the PolicyHandler interface, so
// endpoints can declare either form.
type PolicyFunc func(ability *Ability) bool

func (f PolicyFunc) Handle(ability *Ability) bool {
	return f(ability)
}

// Allow builds the common policy handler: "actor can perform action on subject".
func Allow(action Action, subject Subject) PolicyHandler {
	return PolicyFunc(func(ability *Ability) bool {
		return ability.Can(action, subject)
	})
}

// RequirePolicies is the policy gate. With no handlers declared the endpoint
// is not policy-gated and the request passes. Otherwise an Ability is built
// from the request actor (deny-all when absent) and every handler must
// evaluate true; the first failure denies with 403.
func RequirePolicies(logger *slog.Logger, handlers ...PolicyHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(handlers) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			actor, _ := internal.ActorFromContext(r.Context())
			ability := NewAbility(actor)

			for _, handler := range handlers {
				if !handler.Handle(ability) {
					if actor != nil {
						logger.WarnContext(r.Context(), "access denied: policy check failed",
							"user_id", actor.ID,
							"path", r.URL.Path,
							"grants", ability.Grants())
					} else {
						logger.WarnContext(r.Context(), "access denied: policy check without actor",
							"path", r.URL.Path)
					}
					internal.ErrForbidden.WriteHTTP(w)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
