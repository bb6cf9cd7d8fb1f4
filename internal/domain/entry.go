package domain

import "strings"

// Direction tells whether an entry's magnitude is added to or subtracted from the balance.
type Direction string

const (
	DirectionIncrease Direction = "add"
	DirectionDecrease Direction = "subtract"
)

// ParseDirection accepts the persisted tags and their common aliases.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "increase", "+":
		return DirectionIncrease, nil
	case "subtract", "decrease", "-":
		return DirectionDecrease, nil
	default:
		return "", ErrInvalidDirection
	}
}

// Kind classifies the label an entry affects. It never changes the sign of the delta.
type Kind string

const (
	KindAsset     Kind = "asset"
	KindLiability Kind = "liability"
)

// ParseKind parses a kind, defaulting to KindAsset when s is empty.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asset":
		return KindAsset, nil
	case "liability":
		return KindLiability, nil
	default:
		return "", ErrInvalidKind
	}
}

// Entry is a dated, signed change to net worth.
type Entry struct {
	ID             string
	Date           Date
	Label          string
	Kind           Kind
	Magnitude      float64
	Direction      Direction
	RunningBalance float64
}

// Delta returns the signed change this entry applies to the running balance.
func (e *Entry) Delta() float64 {
	if e.Direction == DirectionDecrease {
		return -e.Magnitude
	}
	return e.Magnitude
}

// Validate checks every user-settable field of the entry.
func (e *Entry) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	if err := ValidateLabel(e.Label); err != nil {
		return err
	}
	if err := ValidateMagnitude(e.Magnitude); err != nil {
		return err
	}
	if e.Direction != DirectionIncrease && e.Direction != DirectionDecrease {
		return ErrInvalidDirection
	}
	if e.Kind != KindAsset && e.Kind != KindLiability {
		return ErrInvalidKind
	}
	return nil
}

// Clone returns a copy of the entry.
func (e *Entry) Clone() *Entry {
	c := *e
	return &c
}
