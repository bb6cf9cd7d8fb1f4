package usecase

import (
	"context"
	"errors"
	"time"
)

// ErrSnapshotNotFound is returned by a SnapshotStore when no value is stored under a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is an opaque key-value store holding serialized snapshots.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Metrics records engine activity.
type Metrics interface {
	ObserveOperation(operation string, duration time.Duration)
	PersistenceFailed(operation string)
	SetLedgerState(entries int, balance float64)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key so the request can be retried.
	Delete(ctx context.Context, key string) error
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, time.Duration) {}
func (nopMetrics) PersistenceFailed(string)               {}
func (nopMetrics) SetLedgerState(int, float64)            {}
