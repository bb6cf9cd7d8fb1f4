package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/infrastructure/retry"
)

func testConnector() *retry.Connector {
	c := retry.NewConnector(20*time.Millisecond, zerolog.Nop())
	c.InitialInterval = time.Millisecond
	c.MaxInterval = 5 * time.Millisecond
	return c
}

func TestNewPoolInvalidURL(t *testing.T) {
	if _, err := NewPool(context.Background(), PoolConfig{DatabaseURL: "not-a-url"}, testConnector()); err == nil {
		t.Fatalf("expected error when parsing invalid URL")
	}
}

func TestNewPoolPingFailure(t *testing.T) {
	cfg := PoolConfig{
		DatabaseURL: "postgres://invalid:5432/db?connect_timeout=1",
		MaxConns:    1,
	}

	if _, err := NewPool(context.Background(), cfg, testConnector()); err == nil {
		t.Fatalf("expected error when pool cannot connect")
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("reading embedded migrations: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected up and down migration, got %d files", len(entries))
	}
}

func TestMigrationsRoundTrip(t *testing.T) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	logger := zerolog.Nop()
	if err := RunMigrations(databaseURL, logger); err != nil {
		t.Fatalf("up: %v", err)
	}
	if err := RunMigrations(databaseURL, logger); err != nil {
		t.Fatalf("second up should be a no-op: %v", err)
	}

	pool, err := NewPool(context.Background(), PoolConfig{DatabaseURL: databaseURL}, testConnector())
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	defer pool.Close()

	var exists bool
	if err := pool.QueryRow(context.Background(), `SELECT to_regclass('snapshots') IS NOT NULL`).Scan(&exists); err != nil || !exists {
		t.Fatalf("expected snapshots table, exists=%v err=%v", exists, err)
	}
}
