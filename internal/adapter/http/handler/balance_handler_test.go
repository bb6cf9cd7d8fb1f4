package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

func seedLedger(t *testing.T) *usecase.LedgerUseCase {
	t.Helper()
	ledger := newTestLedger(t)
	for _, in := range []usecase.AddEntryInput{
		{Date: "2024-01-15", Label: "Checking", Magnitude: 1000, Direction: "add"},
		{Date: "2024-01-10", Label: "Credit Card", Magnitude: 300, Direction: "subtract"},
		{Date: "2024-02-01", Label: "Salary", Magnitude: 2500, Direction: "add"},
	} {
		if _, err := ledger.Add(context.Background(), in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return ledger
}

func TestBalanceHandler_Balance(t *testing.T) {
	h := NewBalanceHandler(seedLedger(t), usd(t))

	tests := []struct {
		target  string
		code    int
		balance float64
	}{
		{"/balance", http.StatusOK, 3200},
		{"/balance?as_of=2024-01-31", http.StatusOK, 700},
		{"/balance?as_of=2024-01-10", http.StatusOK, -300},
		{"/balance?as_of=2023-12-31", http.StatusOK, 0},
		{"/balance?as_of=yesterday", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Balance(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
			if tt.code != http.StatusOK {
				return
			}

			var resp dto.BalanceResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Balance != tt.balance || resp.Currency != "USD" {
				t.Fatalf("unexpected balance response: %+v", resp)
			}
		})
	}
}

func TestBalanceHandler_History(t *testing.T) {
	h := NewBalanceHandler(seedLedger(t), nil)

	rec := httptest.NewRecorder()
	h.History(rec, httptest.NewRequest(http.MethodGet, "/balance/history?from=2024-01-11&to=2024-02-28", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var points []dto.BalancePointResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(points) != 2 || points[0].Date != "2024-01-15" || points[0].Balance != 700 || points[1].Balance != 3200 {
		t.Fatalf("unexpected history: %+v", points)
	}

	rec = httptest.NewRecorder()
	h.History(rec, httptest.NewRequest(http.MethodGet, "/balance/history?from=2024-03-01&to=2024-01-01", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}
}

type verifyStub struct {
	LedgerService
	err error
}

func (s verifyStub) Verify(ctx context.Context) error { return s.err }

func TestBalanceHandler_Consistency(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		code       int
		consistent bool
	}{
		{"consistent", nil, http.StatusOK, true},
		{"drift", domain.ErrInconsistentLedger, http.StatusOK, false},
		{"store failure", errors.New("redis down"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewBalanceHandler(verifyStub{err: tt.err}, nil)

			rec := httptest.NewRecorder()
			h.Consistency(rec, httptest.NewRequest(http.MethodGet, "/ledger/consistency", nil))

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			if tt.code != http.StatusOK {
				return
			}
			var resp dto.ConsistencyResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Consistent != tt.consistent {
				t.Fatalf("expected consistent=%v, got %+v", tt.consistent, resp)
			}
		})
	}
}

func TestBalanceHandler_Breakdown(t *testing.T) {
	h := NewBalanceHandler(seedLedger(t), usd(t))

	rec := httptest.NewRecorder()
	h.Breakdown(rec, httptest.NewRequest(http.MethodGet, "/balance/breakdown", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var totals []dto.LabelTotalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []dto.LabelTotalResponse{
		{Label: "Checking", Total: 1000, Entries: 1, Formatted: "+$1,000.00"},
		{Label: "Credit Card", Total: -300, Entries: 1, Formatted: "-$300.00"},
		{Label: "Salary", Total: 2500, Entries: 1, Formatted: "+$2,500.00"},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d labels, got %+v", len(want), totals)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Fatalf("label %d: expected %+v, got %+v", i, want[i], totals[i])
		}
	}
}

func TestBalanceHandler_BreakdownEmptyLedger(t *testing.T) {
	h := NewBalanceHandler(newTestLedger(t), nil)

	rec := httptest.NewRecorder()
	h.Breakdown(rec, httptest.NewRequest(http.MethodGet, "/balance/breakdown", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" && got != "[]" {
		t.Fatalf("expected empty list, got %q", got)
	}
}
