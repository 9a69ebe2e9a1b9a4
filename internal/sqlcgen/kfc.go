package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const insertKFCNomination = `-- name: InsertKFCNomination :one
INSERT INTO kfc_nominations (nominee, nominator, points, reason)
VALUES ($1, $2, $3, $4)
RETURNING id, nominee, nominator, points, reason, status, decided_by, decided_at, created_at
`

type InsertKFCNominationParams struct {
	Nominee   string
	Nominator string
	Points    int
	Reason    string
}

func (q *Queries) InsertKFCNomination(ctx context.Context, arg InsertKFCNominationParams) (KFCNomination, error) {
	row := q.db.QueryRow(ctx, insertKFCNomination, arg.Nominee, arg.Nominator, arg.Points, arg.Reason)
	return scanKFCNomination(row)
}

const getKFCNomination = `-- name: GetKFCNomination :one
SELECT id, nominee, nominator, points, reason, status, decided_by, decided_at, created_at
FROM kfc_nominations
WHERE id = $1
`

func (q *Queries) GetKFCNomination(ctx context.Context, id string) (KFCNomination, error) {
	return scanKFCNomination(q.db.QueryRow(ctx, getKFCNomination, id))
}

const listKFCNominations = `-- name: ListKFCNominations :many
SELECT id, nominee, nominator, points, reason, status, decided_by, decided_at, created_at
FROM kfc_nominations
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC, id ASC
`

func (q *Queries) ListKFCNominations(ctx context.Context, status *string) ([]KFCNomination, error) {
	rows, err := q.db.Query(ctx, listKFCNominations, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []KFCNomination
	for rows.Next() {
		i, err := scanKFCNomination(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const decideKFCNomination = `-- name: DecideKFCNomination :one
UPDATE kfc_nominations
SET status = $2,
    decided_by = $3,
    decided_at = now()
WHERE id = $1 AND status = 'pending'
RETURNING id, nominee, nominator, points, reason, status, decided_by, decided_at, created_at
`

type DecideKFCNominationParams struct {
	ID        string
	Status    string
	DecidedBy string
}

// DecideKFCNomination flips a pending nomination to approved/denied. Returns
// pgx.ErrNoRows when the nomination is missing or already decided.
func (q *Queries) DecideKFCNomination(ctx context.Context, arg DecideKFCNominationParams) (KFCNomination, error) {
	row := q.db.QueryRow(ctx, decideKFCNomination, arg.ID, arg.Status, arg.DecidedBy)
	return scanKFCNomination(row)
}

func scanKFCNomination(row pgx.Row) (KFCNomination, error) {
	var i KFCNomination
	err := row.Scan(
		&i.ID,
		&i.Nominee,
		&i.Nominator,
		&i.Points,
		&i.Reason,
		&i.Status,
		&i.DecidedBy,
		&i.DecidedAt,
		&i.CreatedAt,
	)
	return i, err
}
