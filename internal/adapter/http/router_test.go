package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/adapter/http/handler"
	apimiddleware "github.com/iho/networth/internal/adapter/http/middleware"
	"github.com/iho/networth/internal/adapter/repository/memory"
	"github.com/iho/networth/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"date":"2024-01-15","label":"Checking","magnitude":1000,"direction":"add"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/entries/",
		"GET /api/v1/entries/",
		"GET /api/v1/entries/{id}",
		"PATCH /api/v1/entries/{id}",
		"DELETE /api/v1/entries/{id}",
		"GET /api/v1/balance",
		"GET /api/v1/balance/history",
		"GET /api/v1/balance/breakdown",
		"GET /api/v1/ledger/consistency",
		"POST /api/v1/assets/",
		"GET /api/v1/assets/",
		"GET /api/v1/assets/totals",
		"DELETE /api/v1/assets/{id}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_LedgerFlow(t *testing.T) {
	router := NewRouter(newRouterConfig())

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/api/v1/entries/", `{"date":"2024-01-15","label":"Checking","magnitude":1000,"direction":"add"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add checking: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(http.MethodPost, "/api/v1/entries/", `{"date":"2024-01-10","label":"Credit Card","magnitude":200,"direction":"subtract"}`)
	var card struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = do(http.MethodPatch, "/api/v1/entries/"+card.ID, `{"magnitude":300}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(http.MethodGet, "/api/v1/balance", "")
	var balance struct {
		Balance float64 `json:"balance"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if balance.Balance != 700 {
		t.Fatalf("expected balance 700, got %v", balance.Balance)
	}

	rec = do(http.MethodGet, "/api/v1/entries/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	store := memory.NewSnapshotStore()
	idGen := &counterIDGen{}

	ledger := usecase.NewLedgerUseCase(usecase.LedgerConfig{Store: store, IDGen: idGen, Logger: zerolog.Nop()})
	ledger.Load(context.Background())
	assets := usecase.NewAssetUseCase(usecase.AssetConfig{Store: store, IDGen: idGen, Logger: zerolog.Nop()})
	assets.Load(context.Background())

	cfg := RouterConfig{
		EntryHandler:   handler.NewEntryHandler(ledger, nil),
		BalanceHandler: handler.NewBalanceHandler(ledger, nil),
		AssetHandler:   handler.NewAssetHandler(assets),
		HealthHandler:  handler.NewHealthHandler("memory", nil),
		Logger:         zerolog.Nop(),
		MetricsHandler: http.NotFoundHandler(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type counterIDGen struct{ n int }

func (g *counterIDGen) Generate() string {
	g.n++
	return "id-" + strconv.Itoa(g.n)
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func (s *stubIdempotencyStore) Delete(ctx context.Context, key string) error {
	return nil
}
