package ledger

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProgressPercent is min(100, current/target*100), or 0 for a non-positive target.
func ProgressPercent(current, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	progress := current.Div(target).Mul(hundred)
	if progress.GreaterThan(hundred) {
		return hundred
	}
	return progress
}
