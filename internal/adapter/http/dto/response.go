package dto

import (
	"github.com/iho/networth/internal/adapter/format"
	"github.com/iho/networth/internal/domain"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Label          string  `json:"label"`
	Kind           string  `json:"kind"`
	Magnitude      float64 `json:"magnitude"`
	Direction      string  `json:"direction"`
	RunningBalance float64 `json:"running_balance"`
	Formatted      string  `json:"formatted_balance,omitempty"`
	Warning        string  `json:"warning,omitempty"`
}

// EntryFromDomain converts a domain entry to a response. money may be nil.
func EntryFromDomain(e *domain.Entry, money *format.Money) *EntryResponse {
	resp := &EntryResponse{
		ID:             e.ID,
		Date:           e.Date.String(),
		Label:          e.Label,
		Kind:           string(e.Kind),
		Magnitude:      e.Magnitude,
		Direction:      string(e.Direction),
		RunningBalance: e.RunningBalance,
	}
	if money != nil {
		resp.Formatted = money.Format(e.RunningBalance)
	}
	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry, money *format.Money) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e, money)
	}
	return result
}

// BalanceResponse represents the ledger balance, optionally as of a date.
type BalanceResponse struct {
	Balance   float64 `json:"balance"`
	AsOf      string  `json:"as_of,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Formatted string  `json:"formatted,omitempty"`
}

// NewBalanceResponse builds a balance response. money may be nil.
func NewBalanceResponse(balance float64, asOf string, money *format.Money) *BalanceResponse {
	resp := &BalanceResponse{Balance: balance, AsOf: asOf}
	if money != nil {
		resp.Currency = money.Code()
		resp.Formatted = money.Format(balance)
	}
	return resp
}

// BalancePointResponse is one point of the balance history.
type BalancePointResponse struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

// HistoryFromDomain converts balance points to responses.
func HistoryFromDomain(points []domain.BalancePoint) []BalancePointResponse {
	result := make([]BalancePointResponse, len(points))
	for i, p := range points {
		result[i] = BalancePointResponse{Date: p.Date.String(), Balance: p.Balance}
	}
	return result
}

// LabelTotalResponse is the summed delta of every entry sharing a label.
type LabelTotalResponse struct {
	Label     string  `json:"label"`
	Total     float64 `json:"total"`
	Entries   int     `json:"entries"`
	Formatted string  `json:"formatted,omitempty"`
}

// BreakdownFromDomain converts label totals to responses. money may be nil.
func BreakdownFromDomain(totals []domain.LabelTotal, money *format.Money) []LabelTotalResponse {
	result := make([]LabelTotalResponse, len(totals))
	for i, t := range totals {
		result[i] = LabelTotalResponse{Label: t.Label, Total: t.Total, Entries: t.Entries}
		if money != nil {
			result[i].Formatted = money.Signed(t.Total)
		}
	}
	return result
}

// AssetResponse represents a registered asset in API responses.
type AssetResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Kind    string  `json:"type"`
	Value   float64 `json:"value"`
	Warning string  `json:"warning,omitempty"`
}

// AssetFromDomain converts a domain asset to a response.
func AssetFromDomain(a *domain.Asset) *AssetResponse {
	return &AssetResponse{
		ID:    a.ID,
		Name:  a.Name,
		Kind:  string(a.Kind),
		Value: a.Value,
	}
}

// AssetsFromDomain converts domain assets to responses.
func AssetsFromDomain(assets []*domain.Asset) []*AssetResponse {
	result := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// AssetTotalsResponse represents registry totals.
type AssetTotalsResponse struct {
	Assets      float64 `json:"assets"`
	Liabilities float64 `json:"liabilities"`
	NetWorth    float64 `json:"net_worth"`
}

// AssetTotalsFromDomain converts registry totals to a response.
func AssetTotalsFromDomain(t domain.AssetTotals) *AssetTotalsResponse {
	return &AssetTotalsResponse{
		Assets:      t.Assets,
		Liabilities: t.Liabilities,
		NetWorth:    t.NetWorth,
	}
}

// ConsistencyResponse reports whether persisted balances match a recompute.
type ConsistencyResponse struct {
	Consistent bool   `json:"consistent"`
	Details    string `json:"details,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
