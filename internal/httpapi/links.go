package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"cobecium/server/internal/geomap"
	"cobecium/server/internal/icons"
	"cobecium/server/internal/sqlcgen"
)

type govLinkResponse struct {
	ID          string    `json:"id"`
	StateCode   string    `json:"state_code"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Icon        string    `json:"icon"`
	Description *string   `json:"description,omitempty"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toGovLinkResponse(l sqlcgen.GovLink) govLinkResponse {
	return govLinkResponse{
		ID:          l.ID,
		StateCode:   l.StateCode,
		Title:       l.Title,
		Category:    l.Category,
		Icon:        icons.ForCategory(l.Category),
		Description: l.Description,
		URL:         l.URL,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type createGovLinkRequest struct {
	StateCode   string  `json:"state_code"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
}

func (req *createGovLinkRequest) validate() map[string]any {
	problems := map[string]any{}
	req.StateCode = strings.ToUpper(strings.TrimSpace(req.StateCode))
	req.Title = strings.TrimSpace(req.Title)
	req.Category = icons.NormalizeCategory(req.Category)
	req.URL = strings.TrimSpace(req.URL)

	if req.StateCode == "" {
		problems["state_code"] = "required"
	} else if !geomap.KnownRegion(req.StateCode) {
		problems["state_code"] = "unknown state code"
	}
	if req.Title == "" {
		problems["title"] = "required"
	}
	if !icons.IsValidCategory(req.Category) {
		problems["category"] = "unknown category"
	}
	if req.URL == "" {
		problems["url"] = "required"
	} else if u, err := url.Parse(req.URL); err != nil || u.Scheme == "" || u.Host == "" {
		problems["url"] = "must be an absolute URL"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

func (h *Handler) ensureLinks(w http.ResponseWriter) bool {
	if h.links == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

func (h *Handler) handleListLinks(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLinks(w) {
		return
	}

	q := r.URL.Query()
	arg := sqlcgen.ListGovLinksParams{
		Category: optional(q.Get("category")),
		Search:   optional(q.Get("q")),
	}
	if state := optional(q.Get("state")); state != nil {
		upper := strings.ToUpper(*state)
		arg.StateCode = &upper
	}

	links, err := h.links.ListGovLinks(r.Context(), arg)
	if err != nil {
		h.log.Error().Err(err).Msg("list gov links failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to list links", nil)
		return
	}

	out := make([]govLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, toGovLinkResponse(l))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"links": out})
}

func (h *Handler) handleGetLink(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLinks(w) {
		return
	}

	id := chi.URLParam(r, "id")
	link, err := h.links.GetGovLink(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "link not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "link id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("get gov link failed")
			h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load link", nil)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, toGovLinkResponse(link))
}

func (h *Handler) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLinks(w) {
		return
	}

	var req createGovLinkRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	if problems := req.validate(); problems != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid link", problems)
		return
	}

	link, err := h.links.CreateGovLink(r.Context(), sqlcgen.CreateGovLinkParams{
		StateCode:   req.StateCode,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create gov link failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to create link", nil)
		return
	}

	h.writeJSON(w, http.StatusCreated, toGovLinkResponse(link))
}

type updateGovLinkRequest struct {
	StateCode   *string `json:"state_code"`
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

func (h *Handler) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLinks(w) {
		return
	}

	id := chi.URLParam(r, "id")
	var req updateGovLinkRequest
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
	if req.Category != nil {
		normalized := icons.NormalizeCategory(*req.Category)
		if !icons.IsValidCategory(normalized) {
			h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown category", map[string]any{"category": *req.Category})
			return
		}
		req.Category = &normalized
	}

	link, err := h.links.UpdateGovLink(r.Context(), sqlcgen.UpdateGovLinkParams{
		ID:          id,
		StateCode:   req.StateCode,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		URL:         req.URL,
	})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "link not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "link id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("update gov link failed")
			h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to update link", nil)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, toGovLinkResponse(link))
}

func (h *Handler) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	if !h.ensureLinks(w) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.links.DeleteGovLink(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "link not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "link id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("delete gov link failed")
			h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete link", nil)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
