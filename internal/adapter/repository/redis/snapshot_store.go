package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/iho/networth/internal/usecase"
)

// SnapshotStore implements usecase.SnapshotStore using Redis strings.
// Snapshots never expire.
type SnapshotStore struct {
	client *redis.Client
	prefix string
}

// NewSnapshotStore creates a new SnapshotStore. Every key is stored under prefix.
func NewSnapshotStore(client *redis.Client, prefix string) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves the snapshot stored under key.
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, usecase.ErrSnapshotNotFound
	}
	return data, err
}

// Set replaces the snapshot stored under key.
func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

// Ping checks the connection.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
