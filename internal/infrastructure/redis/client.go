// Package redis opens the shared Redis connection used for snapshots and idempotency keys.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/networth/internal/infrastructure/retry"
)

// ClientName identifies this service in CLIENT LIST.
const ClientName = "networth"

// NewClient parses redisURL and blocks until the server answers PING or the
// connector gives up. A malformed URL fails immediately.
func NewClient(ctx context.Context, redisURL string, connector *retry.Connector) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if opts.ClientName == "" {
		opts.ClientName = ClientName
	}

	client := redis.NewClient(opts)

	err = connector.Do(ctx, "redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis at %s unreachable: %w", opts.Addr, err)
	}

	return client, nil
}
