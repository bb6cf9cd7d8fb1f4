package domain

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Validation constants
const (
	MaxLabelLength = 255
	MinLabelLength = 1
)

// ValidateLabel validates an entry label or asset name.
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)

	if utf8.RuneCountInString(label) < MinLabelLength {
		return fmt.Errorf("%w: label cannot be empty", ErrInvalidLabel)
	}

	if utf8.RuneCountInString(label) > MaxLabelLength {
		return fmt.Errorf("%w: label exceeds %d characters", ErrInvalidLabel, MaxLabelLength)
	}

	return nil
}

// ValidateMagnitude rejects negative, NaN and infinite magnitudes. Zero is allowed.
func ValidateMagnitude(magnitude float64) error {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidMagnitude, magnitude)
	}

	if magnitude < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidMagnitude, magnitude)
	}

	return nil
}
