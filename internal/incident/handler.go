package incident

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
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeIncidentNotFound))
	case errors.Is(err, ErrNoEligibleAssignee):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeNoEligibleAssignee))
	case errors.Is(err, ErrCategoryNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeCategoryNotFound))
	case errors.Is(err, ErrStatusNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeStatusNotFound))
	case errors.Is(err, ErrAlreadyAssigned):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeIncidentAlreadyAssigned))
	case errors.Is(err, ErrNotOwner):
		h.WriteAppError(w, internal.NewForbiddenError(err.Error(), internal.ErrCodeNotIncidentOwner))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func queryInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}

// CreateIncident godoc
// @Summary Report an incident
// @Description Creates an incident owned by the authenticated user
// @Tags incidents
// @Accept json
// @Produce json
// @Param incident body CreateIncidentDTO true "incident"
// @Success 201 {object} incident.Incident
// @Router /api/v1/incidents [post]
func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.Create(actor.ID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) FindIncidents(w http.ResponseWriter, r *http.Request) {
	params := pagination.Parse(r, "created_at", "id", "title", "status_id", "category_id", "updated_at")
	filters := Filters{
		StatusID:   queryInt64(r, "status_id"),
		CategoryID: queryInt64(r, "category_id"),
		AssignedTo: queryInt64(r, "assigned_to"),
		OwnerID:    queryInt64(r, "owner_id"),
	}

	resp, err := h.Service.FindAll(params, filters)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	inc, err := h.Service.GetByID(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) PatchIncident(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	var dto UpdateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.Patch(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) PutIncident(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	var dto CreateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.Put(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteIncident removes an incident. Only the owner may delete; the check
// happens in the service against the authenticated actor.
func (h *Handler) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	actor, ok := internal.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	if err := h.Service.Delete(id, actor.ID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "incident deleted"})
}

// AutoAssignIncident godoc
// @Summary Auto-assign an incident to a technician
// @Description Picks an idle technician, falling back to the least loaded one
// @Tags incidents
// @Produce json
// @Param id path int true "incident id"
// @Success 200 {object} AssignmentResult
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/incidents/{id}/auto-assign [patch]
func (h *Handler) AutoAssignIncident(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	result, err := h.Service.AutoAssign(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) StatusCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.StatusCounts()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, counts)
}
