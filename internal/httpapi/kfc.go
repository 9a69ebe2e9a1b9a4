package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"cobecium/server/internal/kfc"
	"cobecium/server/internal/sqlcgen"
)

type nominationResponse struct {
	ID        string     `json:"id"`
	Nominee   string     `json:"nominee"`
	Nominator string     `json:"nominator"`
	Points    int        `json:"points"`
	Reason    string     `json:"reason"`
	Status    string     `json:"status"`
	DecidedBy *string    `json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toNominationResponse(n sqlcgen.KFCNomination) nominationResponse {
	return nominationResponse{
		ID:        n.ID,
		Nominee:   n.Nominee,
		Nominator: n.Nominator,
		Points:    n.Points,
		Reason:    n.Reason,
		Status:    n.Status,
		DecidedBy: n.DecidedBy,
		DecidedAt: n.DecidedAt,
		CreatedAt: n.CreatedAt,
	}
}

func (h *Handler) ensureKFC(w http.ResponseWriter) bool {
	if h.kfc == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

type createNominationRequest struct {
	Nominee   string `json:"nominee"`
	Nominator string `json:"nominator"`
	Points    int    `json:"points"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleCreateNomination(w http.ResponseWriter, r *http.Request) {
	if !h.ensureKFC(w) {
		return
	}

	var req createNominationRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	if err := kfc.ValidateNew(req.Nominee, req.Nominator, req.Points, req.Reason); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", err.Error(), nil)
		return
	}

	n, err := h.kfc.InsertKFCNomination(r.Context(), sqlcgen.InsertKFCNominationParams{
		Nominee:   req.Nominee,
		Nominator: req.Nominator,
		Points:    req.Points,
		Reason:    req.Reason,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("insert nomination failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to create nomination", nil)
		return
	}

	h.writeJSON(w, http.StatusCreated, toNominationResponse(n))
}

func (h *Handler) handleListNominations(w http.ResponseWriter, r *http.Request) {
	if !h.ensureKFC(w) {
		return
	}

	status := optional(r.URL.Query().Get("status"))
	if status != nil && !kfc.ValidStatus(*status) {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown status", map[string]any{"status": *status})
		return
	}

	nominations, err := h.kfc.ListKFCNominations(r.Context(), status)
	if err != nil {
		h.log.Error().Err(err).Msg("list nominations failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to list nominations", nil)
		return
	}

	out := make([]nominationResponse, 0, len(nominations))
	for _, n := range nominations {
		out = append(out, toNominationResponse(n))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"nominations": out})
}

type decideNominationRequest struct {
	Decision string `json:"decision"`
}

func (h *Handler) handleDecideNomination(w http.ResponseWriter, r *http.Request) {
	if !h.ensureKFC(w) {
		return
	}

	id := chi.URLParam(r, "id")
	var req decideNominationRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}

	decider := actorFrom(r)
	current, err := h.kfc.GetKFCNomination(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "nomination not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "nomination id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("get nomination failed")
			h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load nomination", nil)
		}
		return
	}

	if err := kfc.ValidateDecision(current.Status, req.Decision, decider); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, kfc.ErrNotPending) {
			status = http.StatusConflict
		}
		h.writeError(w, status, "validation_failed", err.Error(), map[string]any{"status": current.Status})
		return
	}

	n, err := h.kfc.DecideKFCNomination(r.Context(), sqlcgen.DecideKFCNominationParams{
		ID:        id,
		Status:    req.Decision,
		DecidedBy: decider,
	})
	if err != nil {
		// A concurrent decision wins the WHERE status = 'pending' race.
		if errors.Is(err, pgx.ErrNoRows) {
			h.writeError(w, http.StatusConflict, "already_decided", "nomination was already decided", map[string]any{"id": id})
			return
		}
		h.log.Error().Err(err).Str("id", id).Msg("decide nomination failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to decide nomination", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, toNominationResponse(n))
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if !h.ensureKFC(w) {
		return
	}

	approved := kfc.StatusApproved
	nominations, err := h.kfc.ListKFCNominations(r.Context(), &approved)
	if err != nil {
		h.log.Error().Err(err).Msg("list nominations for leaderboard failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to build leaderboard", nil)
		return
	}

	domain := make([]kfc.Nomination, 0, len(nominations))
	for _, n := range nominations {
		domain = append(domain, kfc.Nomination{
			ID:        n.ID,
			Nominee:   n.Nominee,
			Nominator: n.Nominator,
			Points:    n.Points,
			Reason:    n.Reason,
			Status:    n.Status,
			DecidedBy: n.DecidedBy,
			DecidedAt: n.DecidedAt,
			CreatedAt: n.CreatedAt,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"leaderboard": kfc.Leaderboard(domain)})
}
