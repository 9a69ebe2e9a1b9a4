package sqlcgen

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

const createLead = `-- name: CreateLead :one
INSERT INTO leads (title, agency, state_code, url, status, est_value, due_date, notes, source)
VALUES ($1, $2, $3, $4, COALESCE($5, 'new'), $6, $7, $8, $9)
RETURNING id, title, agency, state_code, url, status, est_value, due_date, notes, source, created_at, updated_at
`

type CreateLeadParams struct {
	Title     string
	Agency    *string
	StateCode *string
	URL       *string
	Status    *string
	EstValue  *float64
	DueDate   *time.Time
	Notes     *string
	Source    *string
}

func (q *Queries) CreateLead(ctx context.Context, arg CreateLeadParams) (Lead, error) {
	row := q.db.QueryRow(ctx, createLead,
		arg.Title,
		arg.Agency,
		arg.StateCode,
		arg.URL,
		arg.Status,
		arg.EstValue,
		arg.DueDate,
		arg.Notes,
		arg.Source,
	)
	return scanLead(row)
}

const getLead = `-- name: GetLead :one
SELECT id, title, agency, state_code, url, status, est_value, due_date, notes, source, created_at, updated_at
FROM leads
WHERE id = $1
`

func (q *Queries) GetLead(ctx context.Context, id string) (Lead, error) {
	return scanLead(q.db.QueryRow(ctx, getLead, id))
}

const listLeads = `-- name: ListLeads :many
SELECT id, title, agency, state_code, url, status, est_value, due_date, notes, source, created_at, updated_at
FROM leads
WHERE ($1::text IS NULL OR status = $1)
  AND ($2::text IS NULL OR state_code = $2)
  AND ($3::text IS NULL OR title ILIKE '%' || $3 || '%' OR agency ILIKE '%' || $3 || '%')
ORDER BY created_at DESC, id ASC
`

type ListLeadsParams struct {
	Status    *string
	StateCode *string
	Search    *string
}

func (q *Queries) ListLeads(ctx context.Context, arg ListLeadsParams) ([]Lead, error) {
	rows, err := q.db.Query(ctx, listLeads, arg.Status, arg.StateCode, arg.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Lead
	for rows.Next() {
		i, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateLead = `-- name: UpdateLead :one
UPDATE leads
SET title = COALESCE($2, title),
    agency = COALESCE($3, agency),
    state_code = COALESCE($4, state_code),
    url = COALESCE($5, url),
    status = COALESCE($6, status),
    est_value = COALESCE($7, est_value),
    due_date = COALESCE($8, due_date),
    notes = COALESCE($9, notes),
    updated_at = now()
WHERE id = $1
RETURNING id, title, agency, state_code, url, status, est_value, due_date, notes, source, created_at, updated_at
`

type UpdateLeadParams struct {
	ID        string
	Title     *string
	Agency    *string
	StateCode *string
	URL       *string
	Status    *string
	EstValue  *float64
	DueDate   *time.Time
	Notes     *string
}

func (q *Queries) UpdateLead(ctx context.Context, arg UpdateLeadParams) (Lead, error) {
	row := q.db.QueryRow(ctx, updateLead,
		arg.ID,
		arg.Title,
		arg.Agency,
		arg.StateCode,
		arg.URL,
		arg.Status,
		arg.EstValue,
		arg.DueDate,
		arg.Notes,
	)
	return scanLead(row)
}

const deleteLead = `-- name: DeleteLead :one
DELETE FROM leads
WHERE id = $1
RETURNING id
`

func (q *Queries) DeleteLead(ctx context.Context, id string) (string, error) {
	var deleted string
	err := q.db.QueryRow(ctx, deleteLead, id).Scan(&deleted)
	return deleted, err
}

const upsertLeadFromSource = `-- name: UpsertLeadFromSource :one
INSERT INTO leads (title, agency, state_code, url, status, est_value, due_date, notes, source)
VALUES ($1, $2, $3, $4, 'new', $5, $6, $7, $8)
ON CONFLICT (source, url) WHERE source IS NOT NULL AND url IS NOT NULL
DO UPDATE SET
  title = EXCLUDED.title,
  agency = EXCLUDED.agency,
  state_code = EXCLUDED.state_code,
  est_value = EXCLUDED.est_value,
  due_date = EXCLUDED.due_date,
  updated_at = now()
RETURNING id, (xmax = 0) AS inserted
`

type UpsertLeadFromSourceParams struct {
	Title     string
	Agency    *string
	StateCode *string
	URL       *string
	EstValue  *float64
	DueDate   *time.Time
	Notes     *string
	Source    *string
}

// UpsertLeadFromSource inserts or refreshes a scraped lead keyed by
// (source, url). inserted is true for a brand-new row.
func (q *Queries) UpsertLeadFromSource(ctx context.Context, arg UpsertLeadFromSourceParams) (id string, inserted bool, err error) {
	row := q.db.QueryRow(ctx, upsertLeadFromSource,
		arg.Title,
		arg.Agency,
		arg.StateCode,
		arg.URL,
		arg.EstValue,
		arg.DueDate,
		arg.Notes,
		arg.Source,
	)
	err = row.Scan(&id, &inserted)
	return id, inserted, err
}

func scanLead(row pgx.Row) (Lead, error) {
	var i Lead
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Agency,
		&i.StateCode,
		&i.URL,
		&i.Status,
		&i.EstValue,
		&i.DueDate,
		&i.Notes,
		&i.Source,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
