package usecase

import "time"

const (
	// DefaultEntriesKey is the snapshot key holding the net-worth entry list.
	DefaultEntriesKey = "net-worth-entries"

	// DefaultAssetsKey is the snapshot key holding the asset registry.
	DefaultAssetsKey = "net-worth-assets"

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending is stored under a claimed key until the response is known.
	IdempotencyPending = "processing"
)

// Operation names used for logging and metrics.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
	OpLoad   = "load"

	OpAddAsset    = "add_asset"
	OpRemoveAsset = "remove_asset"
)
