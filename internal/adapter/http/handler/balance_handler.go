package handler

import (
	"errors"
	"net/http"

	"github.com/iho/networth/internal/adapter/format"
	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
)

// BalanceHandler serves balance queries and the consistency check.
type BalanceHandler struct {
	ledger LedgerService
	money  *format.Money
}

// NewBalanceHandler creates a new BalanceHandler. money may be nil.
func NewBalanceHandler(ledger LedgerService, money *format.Money) *BalanceHandler {
	return &BalanceHandler{ledger: ledger, money: money}
}

// Balance returns the current balance, or the balance as of ?as_of=YYYY-MM-DD.
func (h *BalanceHandler) Balance(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'as_of' format (use YYYY-MM-DD)", err.Error())
		return
	}

	if asOf.IsZero() {
		writeJSON(w, http.StatusOK, dto.NewBalanceResponse(h.ledger.CurrentBalance(r.Context()), "", h.money))
		return
	}

	balance := h.ledger.AsOf(r.Context(), asOf)
	writeJSON(w, http.StatusOK, dto.NewBalanceResponse(balance, asOf.String(), h.money))
}

// History returns the closing balance of each entry date within ?from= and ?to=.
func (h *BalanceHandler) History(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'from' format (use YYYY-MM-DD)", err.Error())
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'to' format (use YYYY-MM-DD)", err.Error())
		return
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		writeError(w, http.StatusBadRequest, "'to' is before 'from'", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(h.ledger.History(r.Context(), from, to)))
}

// Breakdown returns the balance contribution of each label.
func (h *BalanceHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.BreakdownFromDomain(h.ledger.Breakdown(r.Context()), h.money))
}

// Consistency checks that persisted running balances match a full recompute.
func (h *BalanceHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	err := h.ledger.Verify(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.ConsistencyResponse{Consistent: true})
	case errors.Is(err, domain.ErrInconsistentLedger):
		writeJSON(w, http.StatusOK, dto.ConsistencyResponse{Consistent: false, Details: err.Error()})
	default:
		writeError(w, http.StatusInternalServerError, "failed to verify ledger", err.Error())
	}
}
