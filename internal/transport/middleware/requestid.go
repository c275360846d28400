package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jalvarado/incident-management/pkg/logger"
)

// TraceID attaches a trace id to the context logger and echoes it back to
// the caller. Incoming X-Trace-ID headers are honored so traces can span
// services.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
