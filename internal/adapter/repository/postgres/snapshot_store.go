package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/networth/internal/usecase"
)

const (
	getSnapshotSQL = `SELECT value FROM snapshots WHERE key = $1`
	setSnapshotSQL = `INSERT INTO snapshots (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// Querier is the subset of pgxpool.Pool used by SnapshotStore.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// SnapshotStore implements usecase.SnapshotStore on the snapshots table.
type SnapshotStore struct {
	db     Querier
	prefix string
}

// NewSnapshotStore creates a new SnapshotStore. Every key is stored under prefix.
func NewSnapshotStore(db Querier, prefix string) *SnapshotStore {
	return &SnapshotStore{db: db, prefix: prefix}
}

// Get retrieves the snapshot stored under key.
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, getSnapshotSQL, s.prefix+key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, usecase.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the snapshot stored under key.
func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Exec(ctx, setSnapshotSQL, s.prefix+key, value); err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

// Ping checks the connection.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
