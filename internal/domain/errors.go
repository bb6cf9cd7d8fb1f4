package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every input validation error.
	ErrValidation = errors.New("validation failed")

	// Entry validation errors
	ErrInvalidMagnitude = fmt.Errorf("%w: magnitude must be a finite, non-negative number", ErrValidation)
	ErrInvalidDate      = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidLabel     = fmt.Errorf("%w: invalid label", ErrValidation)
	ErrInvalidDirection = fmt.Errorf("%w: direction must be add or subtract", ErrValidation)
	ErrInvalidKind      = fmt.Errorf("%w: kind must be asset or liability", ErrValidation)

	// ErrBalanceOutOfRange is returned when a change would push a running balance past float64 range.
	ErrBalanceOutOfRange = fmt.Errorf("%w: running balance out of range", ErrInvalidMagnitude)

	// Asset validation errors
	ErrInvalidAssetName  = fmt.Errorf("%w: invalid asset name", ErrValidation)
	ErrInvalidAssetValue = fmt.Errorf("%w: asset value must be a finite, non-negative number", ErrValidation)

	// Lookup errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInconsistentLedger is returned when stored running balances do not match a recompute.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: running balances do not match entries")
)
