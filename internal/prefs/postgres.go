package prefs

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"cobecium/server/internal/sqlcgen"
)

// Queries is the minimal DB interface the Postgres store needs.
// *sqlcgen.Queries satisfies this.
type Queries interface {
	GetPreference(ctx context.Context, actor, key string) (sqlcgen.Preference, error)
	ListPreferences(ctx context.Context, actor string) ([]sqlcgen.Preference, error)
	UpsertPreference(ctx context.Context, actor, key string, value map[string]any) (sqlcgen.Preference, error)
	DeletePreference(ctx context.Context, actor, key string) (string, error)
}

// PostgresStore persists preferences in the preferences table.
type PostgresStore struct {
	broadcaster
	q Queries
}

func NewPostgresStore(q Queries) *PostgresStore {
	return &PostgresStore{q: q}
}

func (s *PostgresStore) Get(ctx context.Context, actor, key string) (Value, error) {
	row, err := s.q.GetPreference(ctx, actor, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.Value, nil
}

func (s *PostgresStore) List(ctx context.Context, actor string) (map[string]Value, error) {
	rows, err := s.q.ListPreferences(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (s *PostgresStore) Set(ctx context.Context, actor, key string, value Value) error {
	if _, err := s.q.UpsertPreference(ctx, actor, key, value); err != nil {
		return err
	}
	s.notify(actor, key, value)
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, actor, key string) error {
	if _, err := s.q.DeletePreference(ctx, actor, key); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.notify(actor, key, nil)
	return nil
}
