package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"cobecium/server/internal/geomap"
	"cobecium/server/internal/sqlcgen"
)

var leadStatuses = map[string]bool{
	"new":       true,
	"reviewing": true,
	"submitted": true,
	"won":       true,
	"lost":      true,
	"archived":  true,
}

// validLeadTransition enforces the lead pipeline: archived is terminal except
// for moving back to new, everything else may move freely.
func validLeadTransition(from, to string) bool {
	if !leadStatuses[to] {
		return false
	}
	if from == "archived" {
		return to == "new" || to == "archived"
	}
	return true
}

type leadResponse struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Agency    *string    `json:"agency,omitempty"`
	StateCode *string    `json:"state_code,omitempty"`
	URL       *string    `json:"url,omitempty"`
	Status    string     `json:"status"`
	EstValue  *float64   `json:"est_value,omitempty"`
	DueDate   *string    `json:"due_date,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	Source    *string    `json:"source,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toLeadResponse(l sqlcgen.Lead) leadResponse {
	resp := leadResponse{
		ID:        l.ID,
		Title:     l.Title,
		Agency:    l.Agency,
		StateCode: l.StateCode,
		URL:       l.URL,
		Status:    l.Status,
		EstValue:  l.EstValue,
		Notes:     l.Notes,
		Source:    l.Source,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.DueDate != nil {
		due := l.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}

type createLeadRequest struct {
	Title     string   `json:"title"`
	Agency    *string  `json:"agency"`
	StateCode *string  `json:"state_code"`
	URL       *string  `json:"url"`
	Status    *string  `json:"status"`
	EstValue  *float64 `json:"est_value"`
	DueDate   *string  `json:"due_date"`
	Notes     *string  `json:"notes"`
}

func (req *createLeadRequest) validate() (*time.Time, map[string]any) {
	problems := map[string]any{}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		problems["title"] = "required"
	}
	if req.Status != nil && !leadStatuses[*req.Status] {
		problems["status"] = "unknown status"
	}
	if req.StateCode != nil {
		upper := strings.ToUpper(strings.TrimSpace(*req.StateCode))
		if !geomap.KnownRegion(upper) {
			problems["state_code"] = "unknown state code"
		}
		req.StateCode = &upper
	}
	if req.EstValue != nil && *req.EstValue < 0 {
		problems["est_value"] = "must be non-negative"
	}

	var due *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.DueDate))
		if err != nil {
			problems["due_date"] = "expected YYYY-MM-DD"
		} else {
			due = &t
		}
	}

	if len(problems) == 0 {
		return due, nil
	}
	return due, problems
}

func (h *Handler) ensureLeads(w http.ResponseWriter) bool {
	if h.leads == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

func (h *Handler) handleListLeads(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLeads(w) {
		return
	}

	q := r.URL.Query()
	if status := optional(q.Get("status")); status != nil && !leadStatuses[*status] {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown status", map[string]any{"status": *status})
		return
	}

	arg := sqlcgen.ListLeadsParams{
		Status: optional(q.Get("status")),
		Search: optional(q.Get("q")),
	}
	if state := optional(q.Get("state")); state != nil {
		upper := strings.ToUpper(*state)
		arg.StateCode = &upper
	}

	leads, err := h.leads.ListLeads(r.Context(), arg)
	if err != nil {
		h.log.Error().Err(err).Msg("list leads failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to list leads", nil)
		return
	}

	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toLeadResponse(l))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"leads": out})
}

func (h *Handler) handleGetLead(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLeads(w) {
		return
	}

	id := chi.URLParam(r, "id")
	lead, err := h.leads.GetLead(r.Context(), id)
	if err != nil {
		h.leadError(w, err, id, "load")
		return
	}
	h.writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

func (h *Handler) handleCreateLead(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLeads(w) {
		return
	}

	var req createLeadRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	due, problems := req.validate()
	if problems != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid lead", problems)
		return
	}

	lead, err := h.leads.CreateLead(r.Context(), sqlcgen.CreateLeadParams{
		Title:     req.Title,
		Agency:    req.Agency,
		StateCode: req.StateCode,
		URL:       req.URL,
		Status:    req.Status,
		EstValue:  req.EstValue,
		DueDate:   due,
		Notes:     req.Notes,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create lead failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to create lead", nil)
		return
	}

	h.writeJSON(w, http.StatusCreated, toLeadResponse(lead))
}

type updateLeadRequest struct {
	Title     *string  `json:"title"`
	Agency    *string  `json:"agency"`
	StateCode *string  `json:"state_code"`
	URL       *string  `json:"url"`
	Status    *string  `json:"status"`
	EstValue  *float64 `json:"est_value"`
	DueDate   *string  `json:"due_date"`
	Notes     *string  `json:"notes"`
}

func (h *Handler) handleUpdateLead(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLeads(w) {
		return
	}

	id := chi.URLParam(r, "id")
	var req updateLeadRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}

	if req.StateCode != nil {
		upper := strings.ToUpper(strings.TrimSpace(*req.StateCode))
		if !geomap.KnownRegion(upper) {
			h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown state code", map[string]any{"state_code": *req.StateCode})
			return
		}
		req.StateCode = &upper
	}

	var due *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(*req.DueDate))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "validation_failed", "expected YYYY-MM-DD", map[string]any{"due_date": *req.DueDate})
			return
		}
		due = &t
	}

	if req.Status != nil {
		current, err := h.leads.GetLead(r.Context(), id)
		if err != nil {
			h.leadError(w, err, id, "load")
			return
		}
		if !validLeadTransition(current.Status, *req.Status) {
			h.writeError(w, http.StatusConflict, "invalid_transition", "lead status transition not allowed", map[string]any{
				"from": current.Status,
				"to":   *req.Status,
			})
			return
		}
	}

	lead, err := h.leads.UpdateLead(r.Context(), sqlcgen.UpdateLeadParams{
		ID:        id,
		Title:     req.Title,
		Agency:    req.Agency,
		StateCode: req.StateCode,
		URL:       req.URL,
		Status:    req.Status,
		EstValue:  req.EstValue,
		DueDate:   due,
		Notes:     req.Notes,
	})
	if err != nil {
		h.leadError(w, err, id, "update")
		return
	}

	h.writeJSON(w, http.StatusOK, toLeadResponse(lead))
}

func (h *Handler) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLeads(w) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.leads.DeleteLead(r.Context(), id); err != nil {
		h.leadError(w, err, id, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) leadError(w http.ResponseWriter, err error, id, op string) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		h.writeError(w, http.StatusNotFound, "not_found", "lead not found", map[string]any{"id": id})
	case isInvalidUUID(err):
		h.writeError(w, http.StatusBadRequest, "invalid_id", "lead id is not a valid uuid", map[string]any{"id": id})
	default:
		h.log.Error().Err(err).Str("id", id).Str("op", op).Msg("lead query failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to "+op+" lead", nil)
	}
}
