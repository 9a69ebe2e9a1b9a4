package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const insertIngestRun = `-- name: InsertIngestRun :one
INSERT INTO ingest_runs (status, source, stats)
VALUES ('queued', $1, COALESCE($2, '{}'::jsonb))
RETURNING id, status, source, stats, started_at, completed_at, last_error
`

func (q *Queries) InsertIngestRun(ctx context.Context, source *string, stats map[string]any) (IngestRun, error) {
	return scanIngestRun(q.db.QueryRow(ctx, insertIngestRun, source, stats))
}

const claimNextIngestRun = `-- name: ClaimNextIngestRun :one
WITH next AS (
  SELECT id
  FROM ingest_runs
  WHERE status = 'queued'
  ORDER BY started_at ASC
  LIMIT 1
  FOR UPDATE SKIP LOCKED
)
UPDATE ingest_runs ir
SET status = 'running',
    stats = COALESCE($1, ir.stats),
    completed_at = NULL,
    last_error = NULL
FROM next
WHERE ir.id = next.id
RETURNING ir.id, ir.status, ir.source, ir.stats, ir.started_at, ir.completed_at, ir.last_error
`

func (q *Queries) ClaimNextIngestRun(ctx context.Context, stats map[string]any) (IngestRun, error) {
	return scanIngestRun(q.db.QueryRow(ctx, claimNextIngestRun, stats))
}

const updateIngestRun = `-- name: UpdateIngestRun :one
UPDATE ingest_runs
SET status = COALESCE($2, status),
    stats = COALESCE($3, stats),
    completed_at = CASE WHEN $4::boolean THEN now() ELSE completed_at END,
    last_error = $5
WHERE id = $1
RETURNING id, status, source, stats, started_at, completed_at, last_error
`

type UpdateIngestRunParams struct {
	ID           string
	Status       *string
	Stats        map[string]any
	MarkComplete bool
	LastError    *string
}

func (q *Queries) UpdateIngestRun(ctx context.Context, arg UpdateIngestRunParams) (IngestRun, error) {
	return scanIngestRun(q.db.QueryRow(ctx, updateIngestRun, arg.ID, arg.Status, arg.Stats, arg.MarkComplete, arg.LastError))
}

const getLatestIngestRun = `-- name: GetLatestIngestRun :one
SELECT id, status, source, stats, started_at, completed_at, last_error
FROM ingest_runs
ORDER BY started_at DESC
LIMIT 1
`

func (q *Queries) GetLatestIngestRun(ctx context.Context) (IngestRun, error) {
	return scanIngestRun(q.db.QueryRow(ctx, getLatestIngestRun))
}

const getIngestRun = `-- name: GetIngestRun :one
SELECT id, status, source, stats, started_at, completed_at, last_error
FROM ingest_runs
WHERE id = $1
`

func (q *Queries) GetIngestRun(ctx context.Context, id string) (IngestRun, error) {
	return scanIngestRun(q.db.QueryRow(ctx, getIngestRun, id))
}

const insertIngestRunLog = `-- name: InsertIngestRunLog :exec
INSERT INTO ingest_run_logs (run_id, level, message)
VALUES ($1::uuid, $2, $3)
`

type InsertIngestRunLogParams struct {
	RunID   string
	Level   string
	Message string
}

func (q *Queries) InsertIngestRunLog(ctx context.Context, arg InsertIngestRunLogParams) error {
	_, err := q.db.Exec(ctx, insertIngestRunLog, arg.RunID, arg.Level, arg.Message)
	return err
}

const listIngestRunLogs = `-- name: ListIngestRunLogs :many
SELECT run_id, level, message
FROM ingest_run_logs
WHERE run_id = $1::uuid
ORDER BY logged_at ASC
`

func (q *Queries) ListIngestRunLogs(ctx context.Context, runID string) ([]IngestRunLog, error) {
	rows, err := q.db.Query(ctx, listIngestRunLogs, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []IngestRunLog
	for rows.Next() {
		var i IngestRunLog
		if err := rows.Scan(&i.RunID, &i.Level, &i.Message); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func scanIngestRun(row pgx.Row) (IngestRun, error) {
	var i IngestRun
	err := row.Scan(
		&i.ID,
		&i.Status,
		&i.Source,
		&i.Stats,
		&i.StartedAt,
		&i.CompletedAt,
		&i.LastError,
	)
	return i, err
}
