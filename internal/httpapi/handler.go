package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"cobecium/server/internal/db"
	"cobecium/server/internal/metrics"
	"cobecium/server/internal/prefs"
	"cobecium/server/internal/sqlcgen"
)

// Narrow DB interfaces per feature so tests can fake them independently.
// *sqlcgen.Queries satisfies all of them.

type linkQueries interface {
	ListGovLinks(ctx context.Context, arg sqlcgen.ListGovLinksParams) ([]sqlcgen.GovLink, error)
	GetGovLink(ctx context.Context, id string) (sqlcgen.GovLink, error)
	CreateGovLink(ctx context.Context, arg sqlcgen.CreateGovLinkParams) (sqlcgen.GovLink, error)
	UpdateGovLink(ctx context.Context, arg sqlcgen.UpdateGovLinkParams) (sqlcgen.GovLink, error)
	DeleteGovLink(ctx context.Context, id string) (string, error)
}

type leadQueries interface {
	ListLeads(ctx context.Context, arg sqlcgen.ListLeadsParams) ([]sqlcgen.Lead, error)
	GetLead(ctx context.Context, id string) (sqlcgen.Lead, error)
	CreateLead(ctx context.Context, arg sqlcgen.CreateLeadParams) (sqlcgen.Lead, error)
	UpdateLead(ctx context.Context, arg sqlcgen.UpdateLeadParams) (sqlcgen.Lead, error)
	DeleteLead(ctx context.Context, id string) (string, error)
}

type kfcQueries interface {
	InsertKFCNomination(ctx context.Context, arg sqlcgen.InsertKFCNominationParams) (sqlcgen.KFCNomination, error)
	GetKFCNomination(ctx context.Context, id string) (sqlcgen.KFCNomination, error)
	ListKFCNominations(ctx context.Context, status *string) ([]sqlcgen.KFCNomination, error)
	DecideKFCNomination(ctx context.Context, arg sqlcgen.DecideKFCNominationParams) (sqlcgen.KFCNomination, error)
}

type hiringQueries interface {
	InsertResume(ctx context.Context, arg sqlcgen.InsertResumeParams) (sqlcgen.Resume, error)
	GetResume(ctx context.Context, id string) (sqlcgen.Resume, error)
	ListResumes(ctx context.Context) ([]sqlcgen.Resume, error)
	DeleteResume(ctx context.Context, id string) (string, error)
	CreateJobPosting(ctx context.Context, arg sqlcgen.CreateJobPostingParams) (sqlcgen.JobPosting, error)
	GetJobPosting(ctx context.Context, id string) (sqlcgen.JobPosting, error)
	ListJobPostings(ctx context.Context, status *string) ([]sqlcgen.JobPosting, error)
	UpdateJobPosting(ctx context.Context, arg sqlcgen.UpdateJobPostingParams) (sqlcgen.JobPosting, error)
	DeleteJobPosting(ctx context.Context, id string) (string, error)
}

type ingestQueries interface {
	InsertIngestRun(ctx context.Context, source *string, stats map[string]any) (sqlcgen.IngestRun, error)
	GetLatestIngestRun(ctx context.Context) (sqlcgen.IngestRun, error)
	GetIngestRun(ctx context.Context, id string) (sqlcgen.IngestRun, error)
	ListIngestRunLogs(ctx context.Context, runID string) ([]sqlcgen.IngestRunLog, error)
}

type adminQueries interface {
	ListComponentSettings(ctx context.Context) ([]sqlcgen.ComponentSetting, error)
	UpsertComponentSetting(ctx context.Context, arg sqlcgen.UpsertComponentSettingParams) (sqlcgen.ComponentSetting, error)
	InsertAuditEvent(ctx context.Context, arg sqlcgen.InsertAuditEventParams) error
}

type Handler struct {
	log     zerolog.Logger
	pool    *db.Pool
	links   linkQueries
	leads   leadQueries
	kfc     kfcQueries
	hiring  hiringQueries
	ingest  ingestQueries
	admin   adminQueries
	prefs   prefs.Store
	metrics *metrics.Metrics
}

func NewHandler(log zerolog.Logger, pool *db.Pool, store prefs.Store, m *metrics.Metrics) *Handler {
	h := &Handler{log: log, pool: pool, prefs: store, metrics: m}
	if q := pool.Queries(); q != nil {
		h.links = q
		h.leads = q
		h.kfc = q
		h.hiring = q
		h.ingest = q
		h.admin = q
	}
	if h.prefs == nil {
		h.prefs = prefs.NewMemoryStore()
	}
	return h
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(h.accessLog)

	// Health and ops
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyZ)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/links", func(r chi.Router) {
				r.Get("/", h.handleListLinks)
				r.Post("/", h.handleCreateLink)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetLink)
					r.Put("/", h.handleUpdateLink)
					r.Delete("/", h.handleDeleteLink)
				})
			})

			r.Route("/map", func(r chi.Router) {
				r.Get("/pins", h.handleMapPins)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.handleListLeads)
				r.Post("/", h.handleCreateLead)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetLead)
					r.Put("/", h.handleUpdateLead)
					r.Delete("/", h.handleDeleteLead)
				})
			})

			r.Route("/kfc", func(r chi.Router) {
				r.Route("/nominations", func(r chi.Router) {
					r.Get("/", h.handleListNominations)
					r.Post("/", h.handleCreateNomination)
					r.Post("/{id}/decide", h.handleDecideNomination)
				})
				r.Get("/leaderboard", h.handleLeaderboard)
			})

			r.Route("/resumes", func(r chi.Router) {
				r.Get("/", h.handleListResumes)
				r.Post("/", h.handleCreateResume)
				r.Post("/parse", h.handleParseResume)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetResume)
					r.Delete("/", h.handleDeleteResume)
				})
			})

			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", h.handleListJobs)
				r.Post("/", h.handleCreateJob)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetJob)
					r.Put("/", h.handleUpdateJob)
					r.Delete("/", h.handleDeleteJob)
				})
			})

			r.Route("/prefs", func(r chi.Router) {
				r.Get("/", h.handleListPrefs)
				r.Route("/{key}", func(r chi.Router) {
					r.Get("/", h.handleGetPref)
					r.Put("/", h.handleSetPref)
					r.Delete("/", h.handleDeletePref)
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Route("/components", func(r chi.Router) {
					r.Get("/", h.handleListComponents)
					r.Put("/{name}", h.handleUpdateComponent)
				})
			})

			r.Route("/ingest", func(r chi.Router) {
				r.Post("/run", h.handleIngestRun)
				r.Get("/status", h.handleIngestStatus)
				r.Get("/runs/{id}", h.handleGetIngestRun)
			})
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		h.metrics.ObserveHTTPRequest(r.Method, r.URL.Path, ww.Status(), duration)

		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("http_request")
	})
}

// actorFrom resolves the acting user from the X-Actor header. Identity is the
// upstream proxy's problem; an empty header maps to "anonymous".
func actorFrom(r *http.Request) string {
	actor := strings.TrimSpace(r.Header.Get("X-Actor"))
	if actor == "" {
		return "anonymous"
	}
	return actor
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	resp := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		resp["error"].(map[string]any)["details"] = details
	}
	h.writeJSON(w, status, resp)
}

func decodeJSONStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected extra data after JSON body")
		}
		return err
	}
	return nil
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

// optional turns a query parameter into a nullable SQL argument.
func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleReadyZ(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.pool == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return
	}

	if err := h.pool.Ping(ctx); err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not ready", map[string]any{"error": err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}
