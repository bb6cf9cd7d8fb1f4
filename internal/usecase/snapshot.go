package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/iho/networth/internal/domain"
)

// entryRecord is the persisted shape of an entry.
type entryRecord struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Label          string  `json:"label"`
	Kind           string  `json:"kind,omitempty"`
	Magnitude      float64 `json:"magnitude"`
	Direction      string  `json:"direction"`
	RunningBalance float64 `json:"runningBalance"`
}

// assetRecord is the persisted shape of an asset.
type assetRecord struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Kind  string  `json:"type"`
	Value float64 `json:"value"`
}

func encodeEntries(entries []*domain.Entry) ([]byte, error) {
	records := make([]entryRecord, len(entries))
	for i, e := range entries {
		records[i] = entryRecord{
			ID:             e.ID,
			Date:           e.Date.String(),
			Label:          e.Label,
			Kind:           string(e.Kind),
			Magnitude:      e.Magnitude,
			Direction:      string(e.Direction),
			RunningBalance: e.RunningBalance,
		}
	}
	return json.Marshal(records)
}

// decodeEntries parses a snapshot. Records that fail validation are returned in rejected.
func decodeEntries(data []byte) (entries []*domain.Entry, rejected []error, err error) {
	var records []entryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("decoding entries: %w", err)
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		e, err := r.toDomain()
		if err == nil && seen[e.ID] {
			err = fmt.Errorf("duplicate id %q", e.ID)
		}
		if err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}

	return entries, rejected, nil
}

func (r entryRecord) toDomain() (*domain.Entry, error) {
	if r.ID == "" {
		return nil, fmt.Errorf("%w: missing id", domain.ErrValidation)
	}
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	dir, err := domain.ParseDirection(r.Direction)
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}

	e := &domain.Entry{
		ID:             r.ID,
		Date:           date,
		Label:          r.Label,
		Kind:           kind,
		Magnitude:      r.Magnitude,
		Direction:      dir,
		RunningBalance: r.RunningBalance,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func encodeAssets(assets []*domain.Asset) ([]byte, error) {
	records := make([]assetRecord, len(assets))
	for i, a := range assets {
		records[i] = assetRecord{ID: a.ID, Name: a.Name, Kind: string(a.Kind), Value: a.Value}
	}
	return json.Marshal(records)
}

func decodeAssets(data []byte) (assets []*domain.Asset, rejected []error, err error) {
	var records []assetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("decoding assets: %w", err)
	}

	for i, r := range records {
		kind, err := domain.ParseKind(r.Kind)
		a := &domain.Asset{ID: r.ID, Name: r.Name, Kind: kind, Value: r.Value}
		if err == nil {
			err = a.Validate()
		}
		if err == nil && a.ID == "" {
			err = fmt.Errorf("%w: missing id", domain.ErrValidation)
		}
		if err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		assets = append(assets, a)
	}

	return assets, rejected, nil
}
