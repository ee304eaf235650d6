// Package engine - Spreadsheet rounding policy
// Rounding is applied at every derived cell, not only at the requested
// outputs, so error propagation matches native workbook recalculation.
package engine

import "github.com/shopspring/decimal"

// Cell precisions. Excel ROUND semantics are half-away-from-zero at a fixed
// number of decimal places, which is exactly what decimal.Round implements.
const (
	placesCount    = 0 // item and point counts
	placesCurrency = 2 // dollar amounts
	placesFactor   = 4 // percents, ratios, factors
	placesPace     = 2 // daily pace values
)

// RoundCount rounds an item or point count to a whole number.
func RoundCount(d decimal.Decimal) decimal.Decimal {
	return d.Round(placesCount)
}

// RoundCurrency rounds a dollar amount to cents.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(placesCurrency)
}

// RoundFactor rounds a ratio or percent to 4 decimals.
func RoundFactor(d decimal.Decimal) decimal.Decimal {
	return d.Round(placesFactor)
}

// RoundPace rounds a daily pace to 2 decimals.
func RoundPace(d decimal.Decimal) decimal.Decimal {
	return d.Round(placesPace)
}

// safeDiv divides num by den, resolving to zero when the denominator is zero
// or negative. Matches the workbook's guarded division cells.
func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.Sign() <= 0 {
		return decimal.Zero
	}
	return num.Div(den)
}
