package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/networth/internal/adapter/http/dto"
	"github.com/iho/networth/internal/domain"
	"github.com/iho/networth/internal/usecase"
)

// AssetService defines the behavior needed by AssetHandler.
type AssetService interface {
	AddAsset(ctx context.Context, input usecase.AddAssetInput) (*domain.Asset, error)
	RemoveAsset(ctx context.Context, id string) error
	ListAssets(ctx context.Context) []*domain.Asset
	Totals(ctx context.Context) domain.AssetTotals
}

// AssetHandler handles the asset registry.
type AssetHandler struct {
	assets AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assets AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// Create registers an asset or liability.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.assets.AddAsset(r.Context(), req.ToUseCaseInput())
	warning, ok := persistenceWarning(w, err)
	if !ok {
		writeError(w, mapDomainError(err), "failed to add asset", err.Error())
		return
	}

	resp := dto.AssetFromDomain(asset)
	resp.Warning = warning
	writeJSON(w, http.StatusCreated, resp)
}

// List lists registered assets.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AssetsFromDomain(h.assets.ListAssets(r.Context())))
}

// Delete removes an asset from the registry.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing asset ID", "")
		return
	}

	err := h.assets.RemoveAsset(r.Context(), id)
	if _, ok := persistenceWarning(w, err); !ok {
		writeError(w, mapDomainError(err), "failed to remove asset", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Totals sums the registry.
func (h *AssetHandler) Totals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AssetTotalsFromDomain(h.assets.Totals(r.Context())))
}
