package comment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/jalvarado/incident-management/internal"
	"github.com/jalvarado/incident-management/internal/transport"
	"github.com/jalvarado/incident-management/pkg/pagination"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeCommentNotFound))
	case errors.Is(err, ErrIncidentNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeIncidentNotFound))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}

func urlInt64(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}

// CreateComment posts a comment on an incident; the author is the
// authenticated actor.
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	incidentID, err := urlInt64(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	var dto CreateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.Create(incidentID, actor.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) FindComments(w http.ResponseWriter, r *http.Request) {
	incidentID, err := urlInt64(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	params := pagination.Parse(r, "created_at", "id", "updated_at")
	resp, err := h.Service.FindByIncident(incidentID, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	incidentID, err := urlInt64(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}
	commentID, err := urlInt64(r, "commentID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	c, err := h.Service.GetByID(incidentID, commentID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) PatchComment(w http.ResponseWriter, r *http.Request) {
	incidentID, err := urlInt64(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}
	commentID, err := urlInt64(r, "commentID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	var dto UpdateCommentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.Patch(incidentID, commentID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	incidentID, err := urlInt64(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}
	commentID, err := urlInt64(r, "commentID")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.Service.Delete(incidentID, commentID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}
