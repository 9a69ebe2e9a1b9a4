package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX matches the minimal interface needed from pgxpool.Pool or pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

const insertAuditEvent = `-- name: InsertAuditEvent :exec
INSERT INTO audit_events (
  actor,
  action,
  target_type,
  target_id,
  details
)
VALUES ($1, $2, $3, $4::uuid, COALESCE($5, '{}'::jsonb))
`

type InsertAuditEventParams struct {
	Actor      string
	Action     string
	TargetType *string
	TargetID   *string
	Details    map[string]any
}

func (q *Queries) InsertAuditEvent(ctx context.Context, arg InsertAuditEventParams) error {
	_, err := q.db.Exec(ctx, insertAuditEvent, arg.Actor, arg.Action, arg.TargetType, arg.TargetID, arg.Details)
	return err
}

const createGovLink = `-- name: CreateGovLink :one
INSERT INTO gov_links (state_code, title, category, description, url)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, state_code, title, category, description, url, created_at, updated_at
`

type CreateGovLinkParams struct {
	StateCode   string
	Title       string
	Category    string
	Description *string
	URL         string
}

func (q *Queries) CreateGovLink(ctx context.Context, arg CreateGovLinkParams) (GovLink, error) {
	row := q.db.QueryRow(ctx, createGovLink, arg.StateCode, arg.Title, arg.Category, arg.Description, arg.URL)
	return scanGovLink(row)
}

const getGovLink = `-- name: GetGovLink :one
SELECT id, state_code, title, category, description, url, created_at, updated_at
FROM gov_links
WHERE id = $1
`

func (q *Queries) GetGovLink(ctx context.Context, id string) (GovLink, error) {
	return scanGovLink(q.db.QueryRow(ctx, getGovLink, id))
}

const listGovLinks = `-- name: ListGovLinks :many
SELECT id, state_code, title, category, description, url, created_at, updated_at
FROM gov_links
WHERE ($1::text IS NULL OR state_code = $1)
  AND ($2::text IS NULL OR category = $2)
  AND ($3::text IS NULL OR title ILIKE '%' || $3 || '%' OR description ILIKE '%' || $3 || '%')
ORDER BY created_at ASC, id ASC
`

type ListGovLinksParams struct {
	StateCode *string
	Category  *string
	Search    *string
}

func (q *Queries) ListGovLinks(ctx context.Context, arg ListGovLinksParams) ([]GovLink, error) {
	rows, err := q.db.Query(ctx, listGovLinks, arg.StateCode, arg.Category, arg.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GovLink
	for rows.Next() {
		i, err := scanGovLink(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateGovLink = `-- name: UpdateGovLink :one
UPDATE gov_links
SET state_code = COALESCE($2, state_code),
    title = COALESCE($3, title),
    category = COALESCE($4, category),
    description = COALESCE($5, description),
    url = COALESCE($6, url),
    updated_at = now()
WHERE id = $1
RETURNING id, state_code, title, category, description, url, created_at, updated_at
`

type UpdateGovLinkParams struct {
	ID          string
	StateCode   *string
	Title       *string
	Category    *string
	Description *string
	URL         *string
}

func (q *Queries) UpdateGovLink(ctx context.Context, arg UpdateGovLinkParams) (GovLink, error) {
	row := q.db.QueryRow(ctx, updateGovLink,
		arg.ID,
		arg.StateCode,
		arg.Title,
		arg.Category,
		arg.Description,
		arg.URL,
	)
	return scanGovLink(row)
}

const deleteGovLink = `-- name: DeleteGovLink :one
DELETE FROM gov_links
WHERE id = $1
RETURNING id
`

func (q *Queries) DeleteGovLink(ctx context.Context, id string) (string, error) {
	var deleted string
	err := q.db.QueryRow(ctx, deleteGovLink, id).Scan(&deleted)
	return deleted, err
}

func scanGovLink(row pgx.Row) (GovLink, error) {
	var i GovLink
	err := row.Scan(
		&i.ID,
		&i.StateCode,
		&i.Title,
		&i.Category,
		&i.Description,
		&i.URL,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
