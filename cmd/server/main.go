package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/networth/internal/adapter/http"
	"github.com/iho/networth/internal/adapter/http/handler"
	"github.com/iho/networth/internal/adapter/http/middleware"
	"github.com/iho/networth/internal/app"
	"github.com/iho/networth/internal/infrastructure/config"
	"github.com/iho/networth/internal/infrastructure/logger"
)

const (
	rateLimitCleanupInterval = time.Minute
	rateLimitMaxIdle         = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zl := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = zl

	ctx := context.Background()

	application, err := app.New(ctx, cfg, zl, prometheus.DefaultRegisterer)
	if err != nil {
		zl.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to initialize")
	}
	defer application.Close()

	if err := application.Ledger.Verify(ctx); err != nil {
		zl.Warn().Err(err).Msg("stored running balances are stale, they will be rewritten on the next change")
	}

	// Create server
	rateLimiter := newRateLimiter(cfg)
	server := newServer(application, rateLimiter)

	stopCleanup := make(chan struct{})
	if rateLimiter != nil {
		go cleanupLimiters(rateLimiter, stopCleanup, zl)
	}

	// Start server in goroutine
	go func() {
		zl.Info().Str("port", cfg.HTTPPort).Str("driver", cfg.StoreDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info().Msg("shutting down server...")
	close(stopCleanup)

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error().Err(err).Msg("server forced to shutdown")
	}

	zl.Info().Msg("server stopped")
}

func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

func newServer(a *app.App, rateLimiter *middleware.RateLimiter) *http.Server {
	cfg := a.Config

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     handler.NewEntryHandler(a.Ledger, a.Money),
		BalanceHandler:   handler.NewBalanceHandler(a.Ledger, a.Money),
		AssetHandler:     handler.NewAssetHandler(a.Assets),
		HealthHandler:    handler.NewHealthHandler(cfg.StoreDriver, a.Pinger()),
		Logger:           a.Logger,
		IdempotencyStore: a.Idempotency,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func cleanupLimiters(rl *middleware.RateLimiter, stop <-chan struct{}, logger zerolog.Logger) {
	ticker := time.NewTicker(rateLimitCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := rl.CleanupIdle(rateLimitMaxIdle); n > 0 {
				logger.Debug().Int("clients", n).Msg("dropped idle rate limiters")
			}
		case <-stop:
			return
		}
	}
}
