package usecase

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/domain"
)

// AssetConfig holds the collaborators of an AssetUseCase.
type AssetConfig struct {
	Store   SnapshotStore
	IDGen   IDGenerator
	Logger  zerolog.Logger
	Metrics Metrics
	Key     string // snapshot key, defaults to DefaultAssetsKey
}

// AssetUseCase manages the registry of named assets and liabilities.
type AssetUseCase struct {
	mu      sync.Mutex
	assets  []*domain.Asset
	store   SnapshotStore
	idGen   IDGenerator
	logger  zerolog.Logger
	metrics Metrics
	key     string
}

// NewAssetUseCase creates an empty registry. Call Load to restore persisted state.
func NewAssetUseCase(cfg AssetConfig) *AssetUseCase {
	if cfg.Key == "" {
		cfg.Key = DefaultAssetsKey
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	return &AssetUseCase{
		store:   cfg.Store,
		idGen:   cfg.IDGen,
		logger:  cfg.Logger.With().Str("component", "assets").Str("key", cfg.Key).Logger(),
		metrics: cfg.Metrics,
		key:     cfg.Key,
	}
}

// AddAssetInput represents input for registering an asset.
type AddAssetInput struct {
	Name  string
	Kind  string
	Value float64
}

// Load restores the registry. Missing or unreadable snapshots leave it empty.
func (uc *AssetUseCase) Load(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.assets = nil

	data, err := uc.store.Get(ctx, uc.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return
	}
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to read stored assets, starting empty")
		return
	}

	assets, rejected, err := decodeAssets(data)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("stored assets are unreadable, starting empty")
		return
	}
	for _, r := range rejected {
		uc.logger.Warn().Err(r).Msg("dropping invalid stored asset")
	}

	uc.assets = assets
}

// AddAsset registers a new asset. A PersistenceError is returned together with the asset.
func (uc *AssetUseCase) AddAsset(ctx context.Context, input AddAssetInput) (*domain.Asset, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	asset := &domain.Asset{
		Name:  strings.TrimSpace(input.Name),
		Kind:  kind,
		Value: input.Value,
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	asset.ID = uc.idGen.Generate()
	uc.assets = append(uc.assets, asset)

	c := *asset
	return &c, uc.persist(ctx, OpAddAsset)
}

// RemoveAsset deletes an asset from the registry. Ledger entries are not touched.
func (uc *AssetUseCase) RemoveAsset(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	i := slices.IndexFunc(uc.assets, func(a *domain.Asset) bool { return a.ID == id })
	if i < 0 {
		return domain.ErrAssetNotFound
	}
	uc.assets = slices.Delete(uc.assets, i, i+1)

	return uc.persist(ctx, OpRemoveAsset)
}

// ListAssets returns copies of the registered assets in insertion order.
func (uc *AssetUseCase) ListAssets(ctx context.Context) []*domain.Asset {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*domain.Asset, len(uc.assets))
	for i, a := range uc.assets {
		c := *a
		out[i] = &c
	}
	return out
}

// Totals sums the registry by kind.
func (uc *AssetUseCase) Totals(ctx context.Context) domain.AssetTotals {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return domain.SummarizeAssets(uc.assets)
}

func (uc *AssetUseCase) persist(ctx context.Context, op string) error {
	data, err := encodeAssets(uc.assets)
	if err == nil {
		err = uc.store.Set(ctx, uc.key, data)
	}
	if err != nil {
		uc.metrics.PersistenceFailed(op)
		uc.logger.Warn().Err(err).Str("operation", op).Msg("failed to persist assets")
		return &PersistenceError{Operation: op, Key: uc.key, Err: err}
	}
	return nil
}
