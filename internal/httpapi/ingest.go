package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"cobecium/server/internal/sqlcgen"
)

type ingestRunResponse struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	Source      *string        `json:"source,omitempty"`
	Stats       map[string]any `json:"stats"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	LastError   *string        `json:"last_error,omitempty"`
}

func toIngestRunResponse(run sqlcgen.IngestRun) ingestRunResponse {
	stats := run.Stats
	if stats == nil {
		stats = map[string]any{}
	}
	return ingestRunResponse{
		ID:          run.ID,
		Status:      run.Status,
		Source:      run.Source,
		Stats:       stats,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
		LastError:   run.LastError,
	}
}

type ingestRunLogEntry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (h *Handler) ensureIngest(w http.ResponseWriter) bool {
	if h.ingest == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

type ingestRunRequest struct {
	Source *string `json:"source"`
}

// handleIngestRun queues a lead ingest run. The background worker picks it up
// on its next poll.
func (h *Handler) handleIngestRun(w http.ResponseWriter, r *http.Request) {
	if !h.ensureIngest(w) {
		return
	}

	var req ingestRunRequest
	if r.ContentLength > 0 {
		if err := decodeJSONStrict(r, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
			return
		}
	}

	run, err := h.ingest.InsertIngestRun(r.Context(), req.Source, map[string]any{"requested_by": actorFrom(r)})
	if err != nil {
		h.log.Error().Err(err).Msg("queue ingest run failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to queue ingest run", nil)
		return
	}

	h.writeJSON(w, http.StatusAccepted, toIngestRunResponse(run))
}

func (h *Handler) handleIngestStatus(w http.ResponseWriter, r *http.Request) {
	if !h.ensureIngest(w) {
		return
	}

	run, err := h.ingest.GetLatestIngestRun(r.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			h.writeJSON(w, http.StatusOK, map[string]any{"run": nil})
			return
		}
		h.log.Error().Err(err).Msg("get latest ingest run failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load ingest status", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"run": toIngestRunResponse(run)})
}

func (h *Handler) handleGetIngestRun(w http.ResponseWriter, r *http.Request) {
	if !h.ensureIngest(w) {
		return
	}

	id := chi.URLParam(r, "id")
	run, err := h.ingest.GetIngestRun(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "ingest run not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "run id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("get ingest run failed")
			h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load ingest run", nil)
		}
		return
	}

	logs, err := h.ingest.ListIngestRunLogs(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("list ingest run logs failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load ingest run logs", nil)
		return
	}

	entries := make([]ingestRunLogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, ingestRunLogEntry{Level: l.Level, Message: l.Message})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"run":  toIngestRunResponse(run),
		"logs": entries,
	})
}
