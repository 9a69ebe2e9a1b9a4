package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"cobecium/server/internal/resume"
	"cobecium/server/internal/sqlcgen"
)

var jobStatuses = map[string]bool{
	"open":   true,
	"closed": true,
}

type resumeResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           *string   `json:"email,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	YearsExperience int       `json:"years_experience"`
	Skills          []string  `json:"skills"`
	CreatedAt       time.Time `json:"created_at"`
}

func toResumeResponse(res sqlcgen.Resume) resumeResponse {
	skills := res.Skills
	if skills == nil {
		skills = []string{}
	}
	return resumeResponse{
		ID:              res.ID,
		Name:            res.Name,
		Email:           res.Email,
		Phone:           res.Phone,
		YearsExperience: res.YearsExperience,
		Skills:          skills,
		CreatedAt:       res.CreatedAt,
	}
}

func (h *Handler) ensureHiring(w http.ResponseWriter) bool {
	if h.hiring == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

type parseResumeRequest struct {
	Text string `json:"text"`
}

// handleParseResume extracts structured candidate fields from raw resume text
// without persisting anything. The client decides whether to save the result.
func (h *Handler) handleParseResume(w http.ResponseWriter, r *http.Request) {
	var req parseResumeRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "text is required", nil)
		return
	}

	h.writeJSON(w, http.StatusOK, resume.Parse(req.Text))
}

type createResumeRequest struct {
	Name            string   `json:"name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	YearsExperience int      `json:"years_experience"`
	Skills          []string `json:"skills"`
	RawText         *string  `json:"raw_text"`
}

func (h *Handler) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	var req createResumeRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}

	// A raw-text-only submission falls back to the parser for the rest.
	if strings.TrimSpace(req.Name) == "" && req.RawText != nil {
		parsed := resume.Parse(*req.RawText)
		req.Name = parsed.Name
		if req.Email == nil && parsed.Email != "" {
			req.Email = &parsed.Email
		}
		if req.Phone == nil && parsed.Phone != "" {
			req.Phone = &parsed.Phone
		}
		if req.YearsExperience == 0 {
			req.YearsExperience = parsed.YearsExperience
		}
		if len(req.Skills) == 0 {
			req.Skills = parsed.Skills
		}
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "name is required", nil)
		return
	}
	if req.YearsExperience < 0 {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "years_experience must be non-negative", nil)
		return
	}

	res, err := h.hiring.InsertResume(r.Context(), sqlcgen.InsertResumeParams{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		YearsExperience: req.YearsExperience,
		Skills:          req.Skills,
		RawText:         req.RawText,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("insert resume failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to save resume", nil)
		return
	}

	h.writeJSON(w, http.StatusCreated, toResumeResponse(res))
}

func (h *Handler) handleListResumes(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	resumes, err := h.hiring.ListResumes(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list resumes failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}

	out := make([]resumeResponse, 0, len(resumes))
	for _, res := range resumes {
		out = append(out, toResumeResponse(res))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"resumes": out})
}

func (h *Handler) handleGetResume(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	id := chi.URLParam(r, "id")
	res, err := h.hiring.GetResume(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "resume not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "resume id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("get resume failed")
			h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, toResumeResponse(res))
}

func (h *Handler) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.hiring.DeleteResume(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			h.writeError(w, http.StatusNotFound, "not_found", "resume not found", map[string]any{"id": id})
		case isInvalidUUID(err):
			h.writeError(w, http.StatusBadRequest, "invalid_id", "resume id is not a valid uuid", map[string]any{"id": id})
		default:
			h.log.Error().Err(err).Str("id", id).Msg("delete resume failed")
			h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type jobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  *string   `json:"department,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toJobResponse(j sqlcgen.JobPosting) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Department:  j.Department,
		Location:    j.Location,
		Description: j.Description,
		Status:      j.Status,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

type createJobRequest struct {
	Title       string  `json:"title"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *Handler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	var req createJobRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "title is required", nil)
		return
	}
	if req.Status != nil && !jobStatuses[*req.Status] {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown status", map[string]any{"status": *req.Status})
		return
	}

	job, err := h.hiring.CreateJobPosting(r.Context(), sqlcgen.CreateJobPostingParams{
		Title:       req.Title,
		Department:  req.Department,
		Location:    req.Location,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create job posting failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to create job posting", nil)
		return
	}

	h.writeJSON(w, http.StatusCreated, toJobResponse(job))
}

func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	status := optional(r.URL.Query().Get("status"))
	if status != nil && !jobStatuses[*status] {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown status", map[string]any{"status": *status})
		return
	}

	jobs, err := h.hiring.ListJobPostings(r.Context(), status)
	if err != nil {
		h.log.Error().Err(err).Msg("list job postings failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to list job postings", nil)
		return
	}

	out := make([]jobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"jobs": out})
}

func (h *Handler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	id := chi.URLParam(r, "id")
	job, err := h.hiring.GetJobPosting(r.Context(), id)
	if err != nil {
		h.jobError(w, err, id, "load")
		return
	}
	h.writeJSON(w, http.StatusOK, toJobResponse(job))
}

type updateJobRequest struct {
	Title       *string `json:"title"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *Handler) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	id := chi.URLParam(r, "id")
	var req updateJobRequest
	if err := decodeJSONStrict(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "invalid json body", map[string]any{"error": err.Error()})
		return
	}
	if req.Status != nil && !jobStatuses[*req.Status] {
		h.writeError(w, http.StatusBadRequest, "validation_failed", "unknown status", map[string]any{"status": *req.Status})
		return
	}

	job, err := h.hiring.UpdateJobPosting(r.Context(), sqlcgen.UpdateJobPostingParams{
		ID:          id,
		Title:       req.Title,
		Department:  req.Department,
		Location:    req.Location,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.jobError(w, err, id, "update")
		return
	}

	h.writeJSON(w, http.StatusOK, toJobResponse(job))
}

func (h *Handler) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	if !h.ensureHiring(w) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.hiring.DeleteJobPosting(r.Context(), id); err != nil {
		h.jobError(w, err, id, "delete")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) jobError(w http.ResponseWriter, err error, id, op string) {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		h.writeError(w, http.StatusNotFound, "not_found", "job posting not found", map[string]any{"id": id})
	case isInvalidUUID(err):
		h.writeError(w, http.StatusBadRequest, "invalid_id", "job id is not a valid uuid", map[string]any{"id": id})
	default:
		h.log.Error().Err(err).Str("id", id).Str("op", op).Msg("job posting query failed")
		h.writeError(w, http.StatusInternalServerError, "internal_error", "failed to "+op+" job posting", nil)
	}
}
