package dto

import (
	"testing"

	"github.com/iho/networth/internal/adapter/format"
	"github.com/iho/networth/internal/domain"
)

func TestEntryFromDomain(t *testing.T) {
	entry := &domain.Entry{
		ID:             "e1",
		Date:           domain.MustParseDate("2024-01-10"),
		Label:          "Credit Card",
		Kind:           domain.KindLiability,
		Magnitude:      300,
		Direction:      domain.DirectionDecrease,
		RunningBalance: -300,
	}

	money, err := format.NewMoney("USD")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}

	resp := EntryFromDomain(entry, money)
	if resp.ID != "e1" || resp.Date != "2024-01-10" || resp.Direction != "subtract" || resp.Kind != "liability" {
		t.Fatalf("unexpected entry response: %+v", resp)
	}
	if resp.RunningBalance != -300 || resp.Formatted != "-$300.00" {
		t.Fatalf("unexpected balance fields: %+v", resp)
	}

	list := EntriesFromDomain([]*domain.Entry{entry}, nil)
	if len(list) != 1 || list[0].Formatted != "" {
		t.Fatalf("EntriesFromDomain returned %+v", list[0])
	}
}

func TestNewBalanceResponse(t *testing.T) {
	money, err := format.NewMoney("USD")
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}

	resp := NewBalanceResponse(700, "2024-01-31", money)
	if resp.Balance != 700 || resp.AsOf != "2024-01-31" || resp.Currency != "USD" || resp.Formatted != "$700.00" {
		t.Fatalf("unexpected balance response: %+v", resp)
	}
}

func TestHistoryFromDomain(t *testing.T) {
	points := []domain.BalancePoint{
		{Date: domain.MustParseDate("2024-01-10"), Balance: -200},
		{Date: domain.MustParseDate("2024-01-15"), Balance: 800},
	}

	got := HistoryFromDomain(points)
	if len(got) != 2 || got[1].Date != "2024-01-15" || got[1].Balance != 800 {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestAssetResponses(t *testing.T) {
	asset := &domain.Asset{ID: "a1", Name: "House", Kind: domain.KindAsset, Value: 250000}

	list := AssetsFromDomain([]*domain.Asset{asset})
	if len(list) != 1 || list[0].Kind != "asset" || list[0].Value != 250000 {
		t.Fatalf("unexpected asset responses: %+v", list)
	}

	totals := AssetTotalsFromDomain(domain.AssetTotals{Assets: 10, Liabilities: 4, NetWorth: 6})
	if totals.NetWorth != 6 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
}
