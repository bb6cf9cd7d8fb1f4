package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/networth/internal/usecase"
)

// CreateEntryRequest represents a request to add a ledger entry.
// Magnitude accepts a JSON number or a numeric string.
type CreateEntryRequest struct {
	Date      string          `json:"date"`
	Label     string          `json:"label"`
	Kind      string          `json:"kind,omitempty"`
	Magnitude decimal.Decimal `json:"magnitude"`
	Direction string          `json:"direction"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput() usecase.AddEntryInput {
	return usecase.AddEntryInput{
		Date:      r.Date,
		Label:     r.Label,
		Kind:      r.Kind,
		Magnitude: r.Magnitude.InexactFloat64(),
		Direction: r.Direction,
	}
}

// UpdateEntryRequest represents a partial update. Omitted fields are left as they are.
type UpdateEntryRequest struct {
	Date      *string          `json:"date,omitempty"`
	Label     *string          `json:"label,omitempty"`
	Kind      *string          `json:"kind,omitempty"`
	Magnitude *decimal.Decimal `json:"magnitude,omitempty"`
	Direction *string          `json:"direction,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateEntryRequest) ToUseCaseInput() usecase.UpdateEntryInput {
	in := usecase.UpdateEntryInput{
		Date:      r.Date,
		Label:     r.Label,
		Kind:      r.Kind,
		Direction: r.Direction,
	}
	if r.Magnitude != nil {
		m := r.Magnitude.InexactFloat64()
		in.Magnitude = &m
	}
	return in
}

// CreateAssetRequest represents a request to register an asset or liability.
type CreateAssetRequest struct {
	Name  string          `json:"name"`
	Kind  string          `json:"type,omitempty"`
	Value decimal.Decimal `json:"value"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAssetRequest) ToUseCaseInput() usecase.AddAssetInput {
	return usecase.AddAssetInput{
		Name:  r.Name,
		Kind:  r.Kind,
		Value: r.Value.InexactFloat64(),
	}
}
