// Package retry retries startup connections with exponential backoff.
// Snapshot writes are never retried; a failed write is reported once.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Connector retries an operation until it succeeds, returns a permanent
// error, the context ends or MaxElapsedTime passes.
type Connector struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Logger          zerolog.Logger
}

// NewConnector creates a Connector with default intervals.
func NewConnector(maxElapsed time.Duration, logger zerolog.Logger) *Connector {
	return &Connector{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  maxElapsed,
		Logger:          logger,
	}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds. The last error is returned on give-up.
func (c *Connector) Do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.InitialInterval
	b.MaxInterval = c.MaxInterval
	b.MaxElapsedTime = c.MaxElapsedTime

	attempt := 0

	return backoff.RetryNotify(func() error {
		attempt++
		return op(ctx)
	}, backoff.WithContext(b, ctx), func(err error, wait time.Duration) {
		c.Logger.Warn().
			Err(err).
			Str("target", name).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("connection failed, retrying")
	})
}
