// Package ingest runs the background lead ingest worker. Runs are queued in
// the ingest_runs table (via the HTTP API); the worker claims them one at a
// time, pulls lead rows from the run's source feed and upserts them into the
// leads table.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"cobecium/server/internal/geomap"
	"cobecium/server/internal/metrics"
	"cobecium/server/internal/sqlcgen"
)

// Queries is the minimal DB interface the ingest worker needs.
// *sqlcgen.Queries satisfies this.
type Queries interface {
	ClaimNextIngestRun(ctx context.Context, stats map[string]any) (sqlcgen.IngestRun, error)
	UpdateIngestRun(ctx context.Context, arg sqlcgen.UpdateIngestRunParams) (sqlcgen.IngestRun, error)
	InsertIngestRunLog(ctx context.Context, arg sqlcgen.InsertIngestRunLogParams) error
	UpsertLeadFromSource(ctx context.Context, arg sqlcgen.UpsertLeadFromSourceParams) (string, bool, error)
}

type Worker struct {
	log           zerolog.Logger
	q             Queries
	client        *http.Client
	pollInterval  time.Duration
	maxRuntime    time.Duration
	maxLeads      int
	defaultSource string
	metrics       *metrics.Metrics
}

type Options struct {
	PollInterval  time.Duration
	MaxRuntime    time.Duration
	HTTPTimeout   time.Duration
	MaxLeads      int
	DefaultSource string
	Metrics       *metrics.Metrics

	// Client overrides the fetch client, mainly for tests.
	Client *http.Client
}

func New(log zerolog.Logger, q Queries, opts Options) *Worker {
	pi := opts.PollInterval
	if pi <= 0 {
		pi = 5 * time.Second
	}
	mr := opts.MaxRuntime
	if mr <= 0 {
		mr = 2 * time.Minute
	}
	ht := opts.HTTPTimeout
	if ht <= 0 {
		ht = 30 * time.Second
	}
	maxLeads := opts.MaxLeads
	if maxLeads <= 0 {
		maxLeads = 500
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: ht}
	}

	return &Worker{
		log:           log,
		q:             q,
		client:        client,
		pollInterval:  pi,
		maxRuntime:    mr,
		maxLeads:      maxLeads,
		defaultSource: strings.TrimSpace(opts.DefaultSource),
		metrics:       opts.Metrics,
	}
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.q == nil {
		return
	}

	timer := time.NewTimer(w.pollInterval)
	defer timer.Stop()

	var consecutiveFailures int
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		for {
			processed, err := w.runOnce(ctx)
			if err != nil {
				consecutiveFailures++
				break
			}
			consecutiveFailures = 0
			if !processed {
				break
			}
		}

		timer.Reset(backoffDuration(w.pollInterval, consecutiveFailures))
	}
}

func backoffDuration(base time.Duration, failures int) time.Duration {
	if base <= 0 {
		base = 400 * time.Millisecond
	}
	if failures <= 0 {
		return base
	}

	// Exponential-ish backoff: base * 2^failures, capped.
	if failures > 6 {
		failures = 6
	}
	d := base * time.Duration(1<<failures)
	if d > time.Minute {
		return time.Minute
	}
	return d
}

// leadRecord is one row of a source feed: a JSON array of these.
type leadRecord struct {
	Title    string   `json:"title"`
	Agency   string   `json:"agency"`
	State    string   `json:"state"`
	URL      string   `json:"url"`
	EstValue *float64 `json:"est_value"`
	DueDate  string   `json:"due_date"`
	Notes    string   `json:"notes"`
}

func (w *Worker) runOnce(ctx context.Context) (bool, error) {
	run, err := w.q.ClaimNextIngestRun(ctx, map[string]any{
		"stage": "running",
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		w.log.Error().Err(err).Msg("ingest worker failed to claim next run")
		return false, err
	}

	w.metrics.IncIngestRun()
	start := time.Now()
	defer func() {
		w.metrics.ObserveIngestRunDuration(time.Since(start))
	}()

	w.log.Info().Str("run_id", run.ID).Msg("ingest run claimed")

	execCtx, cancel := context.WithTimeout(ctx, w.maxRuntime)
	defer cancel()

	source := w.defaultSource
	if run.Source != nil && strings.TrimSpace(*run.Source) != "" {
		source = strings.TrimSpace(*run.Source)
	}
	if source == "" {
		msg := "no source configured for ingest run"
		w.logRun(execCtx, run.ID, "error", msg)
		_ = w.failRun(execCtx, run.ID, msg, map[string]any{"stage": "failed"})
		return true, errors.New(msg)
	}

	w.logRun(execCtx, run.ID, "info", "ingest run started: "+source)

	records, err := w.fetchLeads(execCtx, source)
	if err != nil {
		w.logRun(execCtx, run.ID, "error", err.Error())
		_ = w.failRun(execCtx, run.ID, err.Error(), map[string]any{
			"stage":  "failed",
			"source": source,
		})
		return true, err
	}

	var inserted, refreshed, skipped int
	for _, rec := range records {
		title := strings.TrimSpace(rec.Title)
		u := strings.TrimSpace(rec.URL)
		// Dedup across runs keys on (source, url); a record without a URL
		// would be re-inserted on every run, so it is skipped instead.
		if title == "" || u == "" {
			skipped++
			continue
		}

		arg := sqlcgen.UpsertLeadFromSourceParams{
			Title:  title,
			URL:    &u,
			Source: &source,
		}
		if agency := strings.TrimSpace(rec.Agency); agency != "" {
			arg.Agency = &agency
		}
		if state := strings.ToUpper(strings.TrimSpace(rec.State)); geomap.KnownRegion(state) {
			arg.StateCode = &state
		}
		arg.EstValue = rec.EstValue
		if due, err := time.Parse("2006-01-02", strings.TrimSpace(rec.DueDate)); err == nil {
			arg.DueDate = &due
		}
		if notes := strings.TrimSpace(rec.Notes); notes != "" {
			arg.Notes = &notes
		}

		_, wasInsert, err := w.q.UpsertLeadFromSource(execCtx, arg)
		if err != nil {
			w.logRun(execCtx, run.ID, "error", fmt.Sprintf("upsert lead %q: %v", title, err))
			_ = w.failRun(execCtx, run.ID, err.Error(), map[string]any{
				"stage":    "failed",
				"source":   source,
				"inserted": inserted,
			})
			return true, err
		}
		if wasInsert {
			inserted++
		} else {
			refreshed++
		}
	}

	w.metrics.AddLeadsUpserted(inserted + refreshed)
	w.logRun(execCtx, run.ID, "info",
		fmt.Sprintf("ingest complete: fetched=%d inserted=%d refreshed=%d skipped=%d", len(records), inserted, refreshed, skipped))

	completed := "completed"
	if _, err := w.q.UpdateIngestRun(execCtx, sqlcgen.UpdateIngestRunParams{
		ID:     run.ID,
		Status: &completed,
		Stats: map[string]any{
			"stage":     "completed",
			"source":    source,
			"fetched":   len(records),
			"inserted":  inserted,
			"refreshed": refreshed,
			"skipped":   skipped,
		},
		MarkComplete: true,
	}); err != nil {
		w.log.Error().Err(err).Str("run_id", run.ID).Msg("failed to mark ingest run completed")
		return true, err
	}

	w.log.Info().
		Str("run_id", run.ID).
		Int("inserted", inserted).
		Int("refreshed", refreshed).
		Int("skipped", skipped).
		Msg("ingest run completed")

	return true, nil
}

func (w *Worker) fetchLeads(ctx context.Context, source string) ([]leadRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build source request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch source: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read source body: %w", err)
	}

	var records []leadRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("parse source body: %w", err)
	}

	if len(records) > w.maxLeads {
		records = records[:w.maxLeads]
	}
	return records, nil
}

func (w *Worker) logRun(ctx context.Context, runID, level, message string) {
	if err := w.q.InsertIngestRunLog(ctx, sqlcgen.InsertIngestRunLogParams{
		RunID:   runID,
		Level:   level,
		Message: message,
	}); err != nil {
		w.log.Warn().Err(err).Str("run_id", runID).Msg("failed to write ingest run log")
	}
}

func (w *Worker) failRun(ctx context.Context, runID, lastError string, stats map[string]any) error {
	failed := "failed"
	_, err := w.q.UpdateIngestRun(ctx, sqlcgen.UpdateIngestRunParams{
		ID:           runID,
		Status:       &failed,
		Stats:        stats,
		MarkComplete: true,
		LastError:    &lastError,
	})
	if err != nil {
		w.log.Error().Err(err).Str("run_id", runID).Msg("failed to mark ingest run failed")
	}
	return err
}
