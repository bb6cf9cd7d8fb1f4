package dto

import (
	"encoding/json"
	"testing"

	"github.com/iho/networth/internal/usecase"
)

func TestCreateEntryRequest_AcceptsNumberOrString(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"number", `{"date":"2024-01-15","label":"Checking","magnitude":1000.5,"direction":"add"}`, 1000.5},
		{"string", `{"date":"2024-01-15","label":"Checking","magnitude":"1000.5","direction":"add"}`, 1000.5},
		{"integer string", `{"date":"2024-01-15","label":"Checking","magnitude":"200","direction":"add"}`, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateEntryRequest
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("decode failed: %v", err)
			}

			got := req.ToUseCaseInput()
			want := usecase.AddEntryInput{
				Date:      "2024-01-15",
				Label:     "Checking",
				Magnitude: tt.want,
				Direction: "add",
			}
			if got != want {
				t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestCreateEntryRequest_RejectsNonNumericMagnitude(t *testing.T) {
	var req CreateEntryRequest
	if err := json.Unmarshal([]byte(`{"magnitude":"lots"}`), &req); err == nil {
		t.Fatalf("expected decode error for non-numeric magnitude")
	}
}

func TestUpdateEntryRequest_ToUseCaseInput(t *testing.T) {
	var req UpdateEntryRequest
	if err := json.Unmarshal([]byte(`{"magnitude":"300","label":"Card"}`), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	got := req.ToUseCaseInput()
	if got.Magnitude == nil || *got.Magnitude != 300 {
		t.Fatalf("expected magnitude 300, got %v", got.Magnitude)
	}
	if got.Label == nil || *got.Label != "Card" {
		t.Fatalf("expected label Card, got %v", got.Label)
	}
	if got.Date != nil || got.Kind != nil || got.Direction != nil {
		t.Fatalf("expected omitted fields to stay nil, got %+v", got)
	}
}

func TestUpdateEntryRequest_Empty(t *testing.T) {
	var req UpdateEntryRequest
	if err := json.Unmarshal([]byte(`{}`), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if got := req.ToUseCaseInput(); got != (usecase.UpdateEntryInput{}) {
		t.Fatalf("expected empty input, got %+v", got)
	}
}

func TestCreateAssetRequest_ToUseCaseInput(t *testing.T) {
	var req CreateAssetRequest
	if err := json.Unmarshal([]byte(`{"name":"Mortgage","type":"liability","value":"180000"}`), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	want := usecase.AddAssetInput{Name: "Mortgage", Kind: "liability", Value: 180000}
	if got := req.ToUseCaseInput(); got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}
