package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/networth/internal/domain"
)

// LedgerConfig holds the collaborators of a LedgerUseCase.
type LedgerConfig struct {
	Store   SnapshotStore
	IDGen   IDGenerator
	Logger  zerolog.Logger
	Metrics Metrics
	Key     string // snapshot key, defaults to DefaultEntriesKey
}

// LedgerUseCase is the net-worth recalculation engine. It owns the canonical
// entry list, recomputes every running balance after each mutation and
// persists the full list through the snapshot store.
type LedgerUseCase struct {
	mu      sync.Mutex
	ledger  *domain.Ledger
	store   SnapshotStore
	idGen   IDGenerator
	logger  zerolog.Logger
	metrics Metrics
	key     string
}

// NewLedgerUseCase creates an empty engine. Call Load to restore persisted state.
func NewLedgerUseCase(cfg LedgerConfig) *LedgerUseCase {
	if cfg.Key == "" {
		cfg.Key = DefaultEntriesKey
	}
	if cfg.Metrics == nil {
		cfg.Metrics = nopMetrics{}
	}

	return &LedgerUseCase{
		ledger:  domain.NewLedger(),
		store:   cfg.Store,
		idGen:   cfg.IDGen,
		logger:  cfg.Logger.With().Str("component", "ledger").Str("key", cfg.Key).Logger(),
		metrics: cfg.Metrics,
		key:     cfg.Key,
	}
}

// AddEntryInput represents input for adding an entry.
type AddEntryInput struct {
	Date      string
	Label     string
	Kind      string
	Magnitude float64
	Direction string
}

// UpdateEntryInput represents a partial change. Nil fields are left untouched.
type UpdateEntryInput struct {
	Date      *string
	Label     *string
	Kind      *string
	Magnitude *float64
	Direction *string
}

// Load restores the entry list from the store. A missing or unreadable
// snapshot leaves the engine empty; it never fails the caller.
func (uc *LedgerUseCase) Load(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	start := time.Now()
	defer func() { uc.metrics.ObserveOperation(OpLoad, time.Since(start)) }()

	uc.ledger = domain.NewLedger()
	defer uc.publishState()

	data, err := uc.store.Get(ctx, uc.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		uc.logger.Info().Msg("no stored entries, starting empty")
		return
	}
	if err != nil {
		uc.logger.Warn().Err(err).Msg("failed to read stored entries, starting empty")
		return
	}

	entries, rejected, err := decodeEntries(data)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("stored entries are unreadable, starting empty")
		return
	}
	for _, r := range rejected {
		uc.logger.Warn().Err(r).Msg("dropping invalid stored entry")
	}

	if err := domain.CheckRange(entries); err != nil {
		uc.logger.Warn().Err(err).Msg("stored entries overflow, starting empty")
		return
	}

	uc.ledger = domain.NewLedger(entries...)
	uc.logger.Info().Int("entries", uc.ledger.Len()).Msg("entries loaded")
}

// Add validates and appends a new entry, recomputes all balances and persists.
// A PersistenceError is returned together with the created entry.
func (uc *LedgerUseCase) Add(ctx context.Context, input AddEntryInput) (*domain.Entry, error) {
	start := time.Now()

	entry, err := input.toEntry()
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	entry.ID = uc.idGen.Generate()
	if err := uc.ledger.Append(entry); err != nil {
		return nil, err
	}
	uc.metrics.ObserveOperation(OpAdd, time.Since(start))

	uc.logger.Debug().
		Str("entry_id", entry.ID).
		Str("date", entry.Date.String()).
		Float64("running_balance", entry.RunningBalance).
		Msg("entry added")

	return entry.Clone(), uc.persist(ctx, OpAdd)
}

// Update applies a partial change to an entry, recomputes all balances and persists.
func (uc *LedgerUseCase) Update(ctx context.Context, id string, input UpdateEntryInput) (*domain.Entry, error) {
	start := time.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	stored := uc.ledger.Find(id)
	if stored == nil {
		return nil, domain.ErrEntryNotFound
	}

	patched, err := input.apply(stored)
	if err != nil {
		return nil, err
	}

	if err := uc.ledger.Replace(id, patched); err != nil {
		return nil, err
	}
	uc.metrics.ObserveOperation(OpUpdate, time.Since(start))

	uc.logger.Debug().
		Str("entry_id", id).
		Float64("running_balance", patched.RunningBalance).
		Msg("entry updated")

	return patched.Clone(), uc.persist(ctx, OpUpdate)
}

// Remove deletes an entry, recomputes all balances and persists.
func (uc *LedgerUseCase) Remove(ctx context.Context, id string) error {
	start := time.Now()

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.ledger.Remove(id); err != nil {
		return err
	}
	uc.metrics.ObserveOperation(OpRemove, time.Since(start))

	uc.logger.Debug().Str("entry_id", id).Msg("entry removed")

	return uc.persist(ctx, OpRemove)
}

// Get returns a copy of one entry.
func (uc *LedgerUseCase) Get(ctx context.Context, id string) (*domain.Entry, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	e := uc.ledger.Find(id)
	if e == nil {
		return nil, domain.ErrEntryNotFound
	}
	return e.Clone(), nil
}

// List returns copies of all entries in chronological order.
func (uc *LedgerUseCase) List(ctx context.Context) []*domain.Entry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.ledger.Chronological()
}

// CurrentBalance returns the balance of the chronologically last entry, or 0.
func (uc *LedgerUseCase) CurrentBalance(ctx context.Context) float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.ledger.CurrentBalance()
}

// AsOf returns the balance of the latest entry dated on or before date, or 0.
func (uc *LedgerUseCase) AsOf(ctx context.Context, date domain.Date) float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.ledger.BalanceAsOf(date)
}

// History returns the closing balance of every entry date within [from, to].
func (uc *LedgerUseCase) History(ctx context.Context, from, to domain.Date) []domain.BalancePoint {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.ledger.History(from, to)
}

// Breakdown returns the signed total of each label.
func (uc *LedgerUseCase) Breakdown(ctx context.Context) []domain.LabelTotal {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.ledger.Breakdown()
}

// Verify checks that the persisted running balances match a full recompute of
// the persisted entries. A missing snapshot is consistent. Records that fail
// validation make the snapshot inconsistent on their own.
func (uc *LedgerUseCase) Verify(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	data, err := uc.store.Get(ctx, uc.key)
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	entries, rejected, err := decodeEntries(data)
	if err != nil {
		return err
	}
	if len(rejected) > 0 {
		return fmt.Errorf("%w: %d invalid stored record(s): %w",
			domain.ErrInconsistentLedger, len(rejected), errors.Join(rejected...))
	}

	return domain.VerifyBalances(entries)
}

// persist writes the full entry list. Must be called with mu held.
func (uc *LedgerUseCase) persist(ctx context.Context, op string) error {
	uc.publishState()

	data, err := encodeEntries(uc.ledger.Entries())
	if err == nil {
		err = uc.store.Set(ctx, uc.key, data)
	}
	if err != nil {
		uc.metrics.PersistenceFailed(op)
		uc.logger.Warn().Err(err).Str("operation", op).Msg("failed to persist entries")
		return &PersistenceError{Operation: op, Key: uc.key, Err: err}
	}

	return nil
}

func (uc *LedgerUseCase) publishState() {
	uc.metrics.SetLedgerState(uc.ledger.Len(), uc.ledger.CurrentBalance())
}

func (in AddEntryInput) toEntry() (*domain.Entry, error) {
	date, err := domain.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, err
	}
	dir, err := domain.ParseDirection(in.Direction)
	if err != nil {
		return nil, err
	}
	kind, err := domain.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}

	e := &domain.Entry{
		Date:      date,
		Label:     strings.TrimSpace(in.Label),
		Kind:      kind,
		Magnitude: in.Magnitude,
		Direction: dir,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// apply returns a validated copy of stored with the input's fields applied.
func (in UpdateEntryInput) apply(stored *domain.Entry) (*domain.Entry, error) {
	e := stored.Clone()

	if in.Date != nil {
		date, err := domain.ParseDate(strings.TrimSpace(*in.Date))
		if err != nil {
			return nil, err
		}
		e.Date = date
	}
	if in.Label != nil {
		e.Label = strings.TrimSpace(*in.Label)
	}
	if in.Kind != nil {
		kind, err := domain.ParseKind(*in.Kind)
		if err != nil {
			return nil, err
		}
		e.Kind = kind
	}
	if in.Magnitude != nil {
		e.Magnitude = *in.Magnitude
	}
	if in.Direction != nil {
		dir, err := domain.ParseDirection(*in.Direction)
		if err != nil {
			return nil, err
		}
		e.Direction = dir
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
