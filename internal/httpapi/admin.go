package httpapi

import (
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"

	"cobecium/server/internal/sqlcgen"
	"cobecium/server/internal/theme"
)

var componentNameRe = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,63}$`)

type componentResponse struct {
	Name        string    `json:"name"`
	Visible     bool      `json:"visible"`
	AccentColor string    `json:"accent_color"`
	AccentClass string    `json:"accent_class"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toComponentResponse(c sqlcgen.ComponentSetting) componentResponse {
	return componentResponse{
		Name:        c.Name,
		Visible:     c.Visible,
		AccentColor: c.AccentColor,
		AccentClass: theme.NearestClass(c.AccentColor),
		UpdatedAt:   c.UpdatedAt,
	}
}

func (h *Handler) ensureAdmin(w http.ResponseWriter) bool {
	if h.admin == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

func (h *Handler) handleListComponents(w http.ResponseWriter, r *http.Request) {
	if !h.ensureAdmin(w) {
		return
	}

	settings, err := h.admin.ListComponentSettings(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list component settings failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to list components", nil)
		return
	}

	out := make([]componentResponse, 0, len(settings))
	for _, c := range settings {
		out = append(out, toComponentResponse(c))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"components": out})
}

type updateComponentRequest struct {
	Visible     bool    `json:"visible"`
	AccentColor *string `json:"accent_color"`
}

func (h *Handler) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	if !h.ensureAdmin(w) {
		return
	}

	name := chi.URLParam(r, "name")
	if !componentNameRe.MatchString(name) {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid component name", map[string]any{"name": name})
		return
	}

	var req updateComponentRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}

	accent := theme.DefaultAccent
	if req.AccentColor != nil {
		if !theme.IsValidHex(*req.AccentColor) {
			h.writeError(w, http.StatusBadRequest, "validation_failed", "accent_color must be a hex color", map[string]any{"accent_color": *req.AccentColor})
			return
		}
		accent = *req.AccentColor
	}

	setting, err := h.admin.UpsertComponentSetting(r.Context(), sqlcgen.UpsertComponentSettingParams{
		Name:        name,
		Visible:     req.Visible,
		AccentColor: accent,
	})
	if err != nil {
		h.log.Error().Err(err).Str("name", name).Msg("upsert component setting failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to save component setting", nil)
		return
	}

	actor := actorFrom(r)
	if err := h.admin.InsertAuditEvent(r.Context(), sqlcgen.InsertAuditEventParams{
		Actor:  actor,
		Action: "component_settings.update",
		Details: map[string]any{
			"name":         setting.Name,
			"visible":      setting.Visible,
			"accent_color": setting.AccentColor,
		},
	}); err != nil {
		// The setting change already landed; losing the audit row is logged
		// rather than rolled back.
		h.log.Error().Err(err).Str("name", name).Str("actor", actor).Msg("audit event insert failed")
	}

	h.writeJSON(w, http.StatusOK, toComponentResponse(setting))
}
