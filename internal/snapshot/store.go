package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Store persists whole collections as single JSON documents. Every repository
// rewrites its full collection after each mutation and reloads it at startup,
// so a snapshot is always an atomic, self-consistent view of one collection.
type Store interface {
	// Load reads the snapshot for a collection into v. It reports whether a
	// snapshot existed; a missing snapshot is not an error.
	Load(ctx context.Context, collection string, v interface{}) (bool, error)

	// Save rewrites the snapshot for a collection from v.
	Save(ctx context.Context, collection string, v interface{}) error
}

type postgresStore struct{ db *sql.DB }

// NewPostgresStore creates the snapshots table if needed and returns a
// Postgres-backed store.
func NewPostgresStore(db *sql.DB) (Store, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
		  collection TEXT PRIMARY KEY,
		  data       JSONB NOT NULL,
		  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return &postgresStore{db: db}, nil
}

func (s *postgresStore) Load(ctx context.Context, collection string, v interface{}) (bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM snapshots WHERE collection=$1`, collection).Scan(&data)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("corrupt snapshot for %s: %w", collection, err)
	}
	return true, nil
}

func (s *postgresStore) Save(ctx context.Context, collection string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot for %s: %w", collection, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (collection, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (collection) DO UPDATE SET data=EXCLUDED.data, updated_at=now()`,
		collection, data)
	return err
}

type noop struct{}

// NewNoop returns a store that keeps nothing. Used in tests and when the
// server runs without a DATABASE_URL (memory-only dev mode).
func NewNoop() Store { return noop{} }

func (noop) Load(ctx context.Context, collection string, v interface{}) (bool, error) {
	return false, nil
}

func (noop) Save(ctx context.Context, collection string, v interface{}) error { return nil }
