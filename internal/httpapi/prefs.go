package httpapi

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"cobecium/server/internal/prefs"
)

var prefKeyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,127}$`)

func (h *Handler) handleListPrefs(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	values, err := h.prefs.List(r.Context(), actor)
	if err != nil {
		h.log.Error().Err(err).Str("actor", actor).Msg("list preferences failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to list preferences", nil)
		return
	}
	if values == nil {
		values = map[string]prefs.Value{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"actor": actor, "preferences": values})
}

func (h *Handler) handleGetPref(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	key := chi.URLParam(r, "key")

	value, err := h.prefs.Get(r.Context(), actor, key)
	if err != nil {
		if errors.Is(err, prefs.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "preference not found", map[string]any{"key": key})
			return
		}
		h.log.Error().Err(err).Str("actor", actor).Str("key", key).Msg("get preference failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load preference", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value})
}

func (h *Handler) handleSetPref(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	key := chi.URLParam(r, "key")
	if !prefKeyRe.MatchString(key) {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid preference key", map[string]any{"key": key})
		return
	}

	var value prefs.Value
	if err := decodeJSONStrict(r, &value); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	if value == nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "value must be a JSON object", nil)
		return
	}

	if err := h.prefs.Set(r.Context(), actor, key, value); err != nil {
		h.log.Error().Err(err).Str("actor", actor).Str("key", key).Msg("set preference failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to save preference", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value})
}

func (h *Handler) handleDeletePref(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	key := chi.URLParam(r, "key")

	if err := h.prefs.Delete(r.Context(), actor, key); err != nil {
		if errors.Is(err, prefs.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "not_found", "preference not found", map[string]any{"key": key})
			return
		}
		h.log.Error().Err(err).Str("actor", actor).Str("key", key).Msg("delete preference failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete preference", nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
