// Package money converts between the ledger's integer cents and decimal
// amounts, and renders amounts for prompts and fallback messages.
//
// Amounts never pass through float64: the store keeps cents in a BIGINT and
// aggregation happens in SQL on integers, so sums are exact.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FromCents returns the decimal amount for an integer number of cents.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ToCents rounds d half-away-from-zero to two places and returns it in cents.
func ToCents(d decimal.Decimal) int64 {
	return d.Round(2).Mul(hundred).IntPart()
}

// Parse reads a decimal string such as "12.34" into cents.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return ToCents(d), nil
}

// Format renders d as dollars with exactly two decimals, e.g. "$450.00".
func Format(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Percent returns part/whole*100 rounded to one decimal place. A zero whole
// yields zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(1)
}
