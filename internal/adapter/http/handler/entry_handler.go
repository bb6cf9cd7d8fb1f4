package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/networth/internal/adapter/format"
	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// LedgerService defines the behavior needed by the ledger handlers.
type LedgerService interface {
	Add(ctx context.Context, input usecase.AddEntryInput) (*domain.Entry, error)
	Update(ctx context.Context, id string, input usecase.UpdateEntryInput) (*domain.Entry, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Entry, error)
	List(ctx context.Context) []*domain.Entry
	CurrentBalance(ctx context.Context) float64
	AsOf(ctx context.Context, date domain.Date) float64
	History(ctx context.Context, from, to domain.Date) []domain.BalancePoint
	Breakdown(ctx context.Context) []domain.LabelTotal
	Verify(ctx context.Context) error
}

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	ledger LedgerService
	money  *format.Money
}

// NewEntryHandler creates a new EntryHandler. money may be nil.
func NewEntryHandler(ledger LedgerService, money *format.Money) *EntryHandler {
	return &EntryHandler{ledger: ledger, money: money}
}

// Create adds a new entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledger.Add(r.Context(), req.ToUseCaseInput())
	warning, ok := persistenceWarning(w, err)
	if !ok {
		writeError(w, mapDomainError(err), "failed to add entry", err.Error())
		return
	}

	resp := dto.EntryFromDomain(entry, h.money)
	resp.Warning = warning
	writeJSON(w, http.StatusCreated, resp)
}

// List lists entries in chronological order with their running balances.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(h.ledger.List(r.Context()), h.money))
}

// Get retrieves an entry by ID.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry, h.money))
}

// Update applies a partial update to an entry.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.ledger.Update(r.Context(), id, req.ToUseCaseInput())
	warning, ok := persistenceWarning(w, err)
	if !ok {
		writeError(w, mapDomainError(err), "failed to update entry", err.Error())
		return
	}

	resp := dto.EntryFromDomain(entry, h.money)
	resp.Warning = warning
	writeJSON(w, http.StatusOK, resp)
}

// Delete removes an entry. A persistence warning travels in the header only.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	err := h.ledger.Remove(r.Context(), id)
	if _, ok := persistenceWarning(w, err); !ok {
		writeError(w, mapDomainError(err), "failed to remove entry", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
