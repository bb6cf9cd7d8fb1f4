package domain

import "fmt"

// Asset is a named holding or debt the user tracks alongside the ledger.
type Asset struct {
	ID    string
	Name  string
	Kind  Kind
	Value float64
}

// AssetTotals summarizes the registry.
type AssetTotals struct {
	Assets      float64
	Liabilities float64
	NetWorth    float64
}

// Validate checks the user-settable fields of the asset.
func (a *Asset) Validate() error {
	if err := ValidateLabel(a.Name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAssetName, err)
	}
	if err := ValidateMagnitude(a.Value); err != nil {
		return ErrInvalidAssetValue
	}
	if a.Kind != KindAsset && a.Kind != KindLiability {
		return ErrInvalidKind
	}
	return nil
}

// SummarizeAssets totals assets and liabilities. Net worth is assets minus liabilities.
func SummarizeAssets(assets []*Asset) AssetTotals {
	var t AssetTotals
	for _, a := range assets {
		if a.Kind == KindLiability {
			t.Liabilities += a.Value
		} else {
			t.Assets += a.Value
		}
	}
	t.NetWorth = t.Assets - t.Liabilities
	return t
}
