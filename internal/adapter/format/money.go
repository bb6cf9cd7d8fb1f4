// Package format renders ledger amounts for people.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats float amounts in one currency.
type Money struct {
	currency *money.Currency
}

// NewMoney returns a formatter for an ISO 4217 currency code.
func NewMoney(code string) (*Money, error) {
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Money{currency: cur}, nil
}

// Code returns the currency code.
func (m *Money) Code() string {
	return m.currency.Code
}

// Format renders amount with the currency symbol and grouping, e.g. -$1,234.50.
// Amounts outside the int64 minor-unit range render without grouping.
func (m *Money) Format(amount float64) string {
	minor, ok := m.minor(amount)
	if !ok {
		return m.wide(amount)
	}
	return m.currency.Formatter().Format(minor)
}

// Signed renders a delta with an explicit sign. Zero renders as "-".
func (m *Money) Signed(delta float64) string {
	minor, ok := m.minor(delta)
	switch {
	case !ok && delta > 0:
		return "+" + m.wide(delta)
	case !ok:
		return m.wide(delta)
	case minor == 0:
		return "-"
	case minor > 0:
		return "+" + m.currency.Formatter().Format(minor)
	default:
		return m.currency.Formatter().Format(minor)
	}
}

// maxMinor keeps rounded minor units clear of the int64 limits.
const maxMinor = 9e18

// minor converts a major-unit amount to rounded minor units. It reports false
// when amount is not finite or does not fit in an int64.
func (m *Money) minor(amount float64) (int64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	places := int32(m.currency.Fraction)
	if math.Abs(amount)*math.Pow10(int(places)) >= maxMinor {
		return 0, false
	}
	return decimal.NewFromFloat(amount).Round(places).Shift(places).IntPart(), true
}

// wide renders amounts that minor cannot represent.
func (m *Money) wide(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', -1, 64)
	}

	d := decimal.NewFromFloat(amount)
	digits := d.Abs().StringFixed(int32(m.currency.Fraction))
	digits = strings.Replace(digits, ".", m.currency.Decimal, 1)

	out := strings.Replace(m.currency.Template, "1", digits, 1)
	out = strings.Replace(out, "$", m.currency.Grapheme, 1)
	if d.IsNegative() {
		return "-" + out
	}
	return out
}
