package service

import (
	"github.com/shopspring/decimal"
)

// ComputeUnitSize derives a recommended flat stake from the bankroll as of
// the end of the previous calendar month: 5% of bankroll, rounded down to
// the nearest 50-unit increment, never negative, capped at 10000.
func ComputeUnitSize(prevMonthEndingBankroll decimal.Decimal) decimal.Decimal {
	raw := prevMonthEndingBankroll.Mul(unitPct)
	rounded := raw.Div(fiftyUnits).Floor().Mul(fiftyUnits)
	if rounded.IsNegative() {
		return decimal.Zero
	}
	if rounded.GreaterThan(unitCeiling) {
		return unitCeiling
	}
	return rounded
}
