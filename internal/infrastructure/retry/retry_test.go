package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func fastConnector() *Connector {
	c := NewConnector(50*time.Millisecond, zerolog.Nop())
	c.InitialInterval = time.Millisecond
	c.MaxInterval = 2 * time.Millisecond
	return c
}

func TestConnectorRetriesUntilSuccess(t *testing.T) {
	attempts := 0
	err := fastConnector().Do(context.Background(), "test", func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestConnectorStopsOnPermanentError(t *testing.T) {
	attempts := 0
	permanentErr := errors.New("bad credentials")

	err := fastConnector().Do(context.Background(), "test", func(context.Context) error {
		attempts++
		return Permanent(permanentErr)
	})

	if !errors.Is(err, permanentErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestConnectorGivesUp(t *testing.T) {
	down := errors.New("down")
	err := fastConnector().Do(context.Background(), "test", func(context.Context) error {
		return down
	})

	if !errors.Is(err, down) {
		t.Fatalf("expected last error after giving up, got %v", err)
	}
}

func TestConnectorHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := fastConnector()
	c.MaxElapsedTime = time.Minute

	err := c.Do(ctx, "test", func(context.Context) error {
		return errors.New("down")
	})
	if err == nil {
		t.Fatalf("expected error with cancelled context")
	}
}
