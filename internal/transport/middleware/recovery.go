package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/jalvarado/incident-management/internal"
)

// RecoveryMiddleware turns handler panics into 500 responses instead of
// dropped connections.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"method", r.Method,
						"url", r.URL.String(),
						"stack", string(debug.Stack()))

					internal.NewInternalError("internal server error", nil).WriteHTTP(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
