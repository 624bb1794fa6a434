package ledger

import "github.com/shopspring/decimal"

// BalanceFromTotals derives an account balance from per-type transaction totals.
func BalanceFromTotals(totals map[TransactionType]decimal.Decimal) decimal.Decimal {
	balance := decimal.Zero
	for t, total := range totals {
		switch t.Direction() {
		case 1:
			balance = balance.Add(total)
		case -1:
			balance = balance.Sub(total)
		}
	}
	return balance
}
