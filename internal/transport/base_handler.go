package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jalvarado/incident-management/internal"
	"github.com/jalvarado/incident-management/pkg/logger"
)

// BaseHandler carries the pieces every HTTP handler needs.
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteAppError writes the typed error envelope shared by every endpoint.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, appErr *internal.AppError) {
	h.Logger.Error("http error",
		"status", appErr.StatusCode,
		"code", appErr.Code,
		"message", appErr.Message)
	appErr.WriteHTTP(w)
}

// WriteError writes an error envelope with a generic code derived from the
// status. Handlers that know the domain sentinel use WriteAppError instead.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.WriteAppError(w, internal.AppErrorForStatus(status, message))
}

// ExtractTokenFromHeader pulls the bearer token out of the Authorization
// header, or returns "" when the header is missing or malformed.
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}

	return authHeader[len(prefix):]
}
