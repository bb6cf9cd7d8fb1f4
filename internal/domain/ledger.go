package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// BalancePoint is the closing balance of one calendar day.
type BalancePoint struct {
	Date    Date
	Balance float64
}

// LabelTotal is the signed sum of every entry sharing a label.
type LabelTotal struct {
	Label   string
	Total   float64
	Entries int
}

// Ledger owns entries in insertion order and keeps a chronological view
// whose running balances are always fully recomputed.
type Ledger struct {
	entries []*Entry // insertion order, the persisted order
	chrono  []*Entry
}

// NewLedger builds a ledger from entries in insertion order and recomputes it.
func NewLedger(entries ...*Entry) *Ledger {
	l := &Ledger{entries: slices.Clone(entries)}
	l.Recompute()
	return l
}

// Recompute stable-sorts entries ascending by date and assigns each one the
// cumulative signed sum of every entry up to and including it. Ties keep the
// relative order they have in entries. The returned slice shares pointers with entries.
func Recompute(entries []*Entry) []*Entry {
	chrono := chronological(entries)

	balance := 0.0
	for _, e := range chrono {
		balance += e.Delta()
		e.RunningBalance = balance
	}

	return chrono
}

// VerifyBalances checks stored running balances against a recompute without modifying entries.
func VerifyBalances(entries []*Entry) error {
	balance := 0.0
	for _, e := range chronological(entries) {
		balance += e.Delta()
		if e.RunningBalance != balance {
			return fmt.Errorf("%w: entry %s on %s has %v, want %v",
				ErrInconsistentLedger, e.ID, e.Date, e.RunningBalance, balance)
		}
	}

	return nil
}

// CheckRange reports ErrBalanceOutOfRange when some running balance of
// entries would not be a finite number. Entries are not modified.
func CheckRange(entries []*Entry) error {
	balance := 0.0
	for _, e := range chronological(entries) {
		balance += e.Delta()
		if math.IsInf(balance, 0) || math.IsNaN(balance) {
			return fmt.Errorf("%w: at entry %s on %s", ErrBalanceOutOfRange, e.ID, e.Date)
		}
	}
	return nil
}

func chronological(entries []*Entry) []*Entry {
	chrono := slices.Clone(entries)
	slices.SortStableFunc(chrono, func(a, b *Entry) int {
		return a.Date.Compare(b.Date)
	})
	return chrono
}

// Recompute re-derives the chronological view and every running balance.
func (l *Ledger) Recompute() {
	l.chrono = Recompute(l.entries)
}

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Append adds an entry at the end of the insertion order and recomputes.
// The ledger is left unchanged when a running balance would overflow.
func (l *Ledger) Append(e *Entry) error {
	candidate := append(slices.Clone(l.entries), e)
	if err := CheckRange(candidate); err != nil {
		return err
	}
	l.entries = candidate
	l.Recompute()
	return nil
}

// Replace swaps the entry with the given ID for e, keeping its insertion
// position, and recomputes. The ledger is left unchanged on error.
func (l *Ledger) Replace(id string, e *Entry) error {
	i := slices.IndexFunc(l.entries, func(x *Entry) bool { return x.ID == id })
	if i < 0 {
		return ErrEntryNotFound
	}

	candidate := slices.Clone(l.entries)
	candidate[i] = e
	if err := CheckRange(candidate); err != nil {
		return err
	}
	l.entries = candidate
	l.Recompute()
	return nil
}

// Find returns the stored entry with the given ID, or nil.
func (l *Ledger) Find(id string) *Entry {
	for _, e := range l.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Remove deletes the entry with the given ID and recomputes. Dropping an
// offsetting entry can push a later balance out of range, in which case the
// ledger is left unchanged.
func (l *Ledger) Remove(id string) error {
	i := slices.IndexFunc(l.entries, func(e *Entry) bool { return e.ID == id })
	if i < 0 {
		return ErrEntryNotFound
	}

	candidate := slices.Delete(slices.Clone(l.entries), i, i+1)
	if err := CheckRange(candidate); err != nil {
		return err
	}
	l.entries = candidate
	l.Recompute()
	return nil
}

// Entries returns copies of the entries in insertion order.
func (l *Ledger) Entries() []*Entry {
	return cloneAll(l.entries)
}

// Chronological returns copies of the entries sorted by date.
func (l *Ledger) Chronological() []*Entry {
	return cloneAll(l.chrono)
}

// CurrentBalance returns the running balance of the chronologically last entry, or 0.
func (l *Ledger) CurrentBalance() float64 {
	if len(l.chrono) == 0 {
		return 0
	}
	return l.chrono[len(l.chrono)-1].RunningBalance
}

// BalanceAsOf returns the running balance of the latest entry dated on or before d, or 0.
func (l *Ledger) BalanceAsOf(d Date) float64 {
	i := l.upperBound(d)
	if i == 0 {
		return 0
	}
	return l.chrono[i-1].RunningBalance
}

// History returns one point per distinct entry date within [from, to]. A zero
// bound leaves that side open. Each point carries the day's closing balance.
func (l *Ledger) History(from, to Date) []BalancePoint {
	var points []BalancePoint
	for _, e := range l.chrono {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			break
		}
		if n := len(points); n > 0 && points[n-1].Date == e.Date {
			points[n-1].Balance = e.RunningBalance
			continue
		}
		points = append(points, BalancePoint{Date: e.Date, Balance: e.RunningBalance})
	}
	return points
}

// Breakdown sums the signed deltas of the entries per label, sorted by label.
func (l *Ledger) Breakdown() []LabelTotal {
	index := make(map[string]int)
	var totals []LabelTotal
	for _, e := range l.entries {
		i, ok := index[e.Label]
		if !ok {
			i = len(totals)
			index[e.Label] = i
			totals = append(totals, LabelTotal{Label: e.Label})
		}
		totals[i].Total += e.Delta()
		totals[i].Entries++
	}

	slices.SortFunc(totals, func(a, b LabelTotal) int {
		return cmp.Compare(a.Label, b.Label)
	})
	return totals
}

// upperBound returns the index of the first chronological entry dated after d.
func (l *Ledger) upperBound(d Date) int {
	lo, hi := 0, len(l.chrono)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if l.chrono[mid].Date.After(d) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

func cloneAll(entries []*Entry) []*Entry {
	out := make([]*Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
