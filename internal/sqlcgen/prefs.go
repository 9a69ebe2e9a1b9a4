package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const getPreference = `-- name: GetPreference :one
SELECT actor, key, value, updated_at
FROM preferences
WHERE actor = $1 AND key = $2
`

func (q *Queries) GetPreference(ctx context.Context, actor, key string) (Preference, error) {
	return scanPreference(q.db.QueryRow(ctx, getPreference, actor, key))
}

const listPreferences = `-- name: ListPreferences :many
SELECT actor, key, value, updated_at
FROM preferences
WHERE actor = $1
ORDER BY key ASC
`

func (q *Queries) ListPreferences(ctx context.Context, actor string) ([]Preference, error) {
	rows, err := q.db.Query(ctx, listPreferences, actor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Preference
	for rows.Next() {
		i, err := scanPreference(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const upsertPreference = `-- name: UpsertPreference :one
INSERT INTO preferences (actor, key, value)
VALUES ($1, $2, $3)
ON CONFLICT (actor, key)
DO UPDATE SET value = EXCLUDED.value, updated_at = now()
RETURNING actor, key, value, updated_at
`

func (q *Queries) UpsertPreference(ctx context.Context, actor, key string, value map[string]any) (Preference, error) {
	return scanPreference(q.db.QueryRow(ctx, upsertPreference, actor, key, value))
}

const deletePreference = `-- name: DeletePreference :one
DELETE FROM preferences
WHERE actor = $1 AND key = $2
RETURNING key
`

func (q *Queries) DeletePreference(ctx context.Context, actor, key string) (string, error) {
	var deleted string
	err := q.db.QueryRow(ctx, deletePreference, actor, key).Scan(&deleted)
	return deleted, err
}

func scanPreference(row pgx.Row) (Preference, error) {
	var i Preference
	err := row.Scan(&i.Actor, &i.Key, &i.Value, &i.UpdatedAt)
	return i, err
}

const listComponentSettings = `-- name: ListComponentSettings :many
SELECT name, visible, accent_color, updated_at
FROM component_settings
ORDER BY name ASC
`

func (q *Queries) ListComponentSettings(ctx context.Context) ([]ComponentSetting, error) {
	rows, err := q.db.Query(ctx, listComponentSettings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ComponentSetting
	for rows.Next() {
		var i ComponentSetting
		if err := rows.Scan(&i.Name, &i.Visible, &i.AccentColor, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const upsertComponentSetting = `-- name: UpsertComponentSetting :one
INSERT INTO component_settings (name, visible, accent_color)
VALUES ($1, $2, $3)
ON CONFLICT (name)
DO UPDATE SET visible = EXCLUDED.visible, accent_color = EXCLUDED.accent_color, updated_at = now()
RETURNING name, visible, accent_color, updated_at
`

type UpsertComponentSettingParams struct {
	Name        string
	Visible     bool
	AccentColor string
}

func (q *Queries) UpsertComponentSetting(ctx context.Context, arg UpsertComponentSettingParams) (ComponentSetting, error) {
	var i ComponentSetting
	err := q.db.QueryRow(ctx, upsertComponentSetting, arg.Name, arg.Visible, arg.AccentColor).
		Scan(&i.Name, &i.Visible, &i.AccentColor, &i.UpdatedAt)
	return i, err
}
