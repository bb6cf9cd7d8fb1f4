package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/adapter/repository/memory"
	"github.com/iho/networth/internal/usecase"
)

func newTestAssets(t *testing.T) *usecase.AssetUseCase {
	t.Helper()
	uc := usecase.NewAssetUseCase(usecase.AssetConfig{
		Store:  memory.NewSnapshotStore(),
		IDGen:  &seqIDGen{},
		Logger: zerolog.Nop(),
	})
	uc.Load(context.Background())
	return uc
}

func TestAssetHandler_Lifecycle(t *testing.T) {
	h := NewAssetHandler(newTestAssets(t))

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader(`{"name":"House","value":"250000"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var house dto.AssetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &house); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader(`{"name":"Mortgage","type":"liability","value":180000}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Totals(rec, httptest.NewRequest(http.MethodGet, "/assets/totals", nil))
	var totals dto.AssetTotalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &totals); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if totals.NetWorth != 70000 {
		t.Fatalf("expected net worth 70000, got %+v", totals)
	}

	rec = withURLParam(http.MethodDelete, "/assets/{id}", "/assets/"+house.ID, nil, h.Delete)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = withURLParam(http.MethodDelete, "/assets/{id}", "/assets/"+house.ID, nil, h.Delete)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/assets", nil))
	var list []dto.AssetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Mortgage" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestAssetHandler_CreateValidation(t *testing.T) {
	h := NewAssetHandler(newTestAssets(t))

	for _, body := range []string{`{"name":"","value":1}`, `{"name":"Car","value":-5}`, `{"name":"Car","type":"equity","value":5}`, `nope`} {
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, rec.Code)
		}
	}
}
