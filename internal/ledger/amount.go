package ledger

import (
	"github.com/shopspring/decimal"
)

// Amounts are stored as numeric(12,2).
const amountPlaces = 2

var maxAmount = decimal.New(1, 10)

// ValidateAmount checks that a money-movement amount is strictly positive,
// has no more than two decimal places and fits the storage column.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(amountPlaces)) {
		return ErrInvalidAmount
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateBalance checks a signed balance (e.g. an account's starting
// balance) against the same precision rules, allowing zero and negatives.
func ValidateBalance(balance decimal.Decimal) error {
	if balance.IsZero() {
		return nil
	}
	return ValidateAmount(balance.Abs())
}
