// Package money provides helpers for monetary amounts stored as int64 cents.
// Amounts are converted to decimal only at serialization boundaries, so every
// computation rounds to 2 decimal places exactly once.
package money

import (
	"fmt"
	"math"
)

// Cents is a monetary amount in hundredths of the currency unit.
type Cents = int64

// FromDecimal converts a decimal amount (e.g. 2.50) to cents, rounding half
// away from zero.
func FromDecimal(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// ToDecimal converts cents back to a decimal amount.
func ToDecimal(c Cents) float64 {
	return float64(c) / 100
}

// Round rounds an intermediate decimal cent value (e.g. the result of a
// percentage computation) to whole cents, half away from zero.
func Round(cents float64) Cents {
	return Cents(math.Round(cents))
}

// Percent applies a percentage to an amount and rounds to whole cents.
func Percent(c Cents, pct float64) Cents {
	return Round(float64(c) * pct / 100)
}

// Clamp returns c floored at 0. Monetary results never go negative.
func Clamp(c Cents) Cents {
	if c < 0 {
		return 0
	}
	return c
}

// Format renders cents as a decimal string with two places, e.g. "4.82".
func Format(c Cents) string {
	return fmt.Sprintf("%.2f", ToDecimal(c))
}
