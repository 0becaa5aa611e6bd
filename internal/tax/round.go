package tax

import "github.com/shopspring/decimal"

// epsilon nudges exact .005 boundaries upward before rounding.
var epsilon = decimal.New(1, -9)

// Round2 applies the billing rounding policy: add 1e-9, then round half
// away from zero to 2 decimal places. It is idempotent.
func Round2(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return d.Sub(epsilon).Round(2)
	}
	return d.Add(epsilon).Round(2)
}

// RoundFloat is Round2 for callers holding float64 amounts.
func RoundFloat(f float64) decimal.Decimal {
	return Round2(decimal.NewFromFloat(f))
}
