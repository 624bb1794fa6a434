package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType tags the direction of a transaction. Amounts are always
// positive; the type decides the sign of the effect.
type TransactionType string

const (
	TransactionTypeIncome         TransactionType = "income"
	TransactionTypeExpense        TransactionType = "expense"
	TransactionTypeTransfer       TransactionType = "transfer"
	TransactionTypeGoalDeposit    TransactionType = "goal_deposit"
	TransactionTypeGoalWithdrawal TransactionType = "goal_withdrawal"
)

// ParseTransactionType converts a stored or submitted tag into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TransactionTypeIncome,
		TransactionTypeExpense,
		TransactionTypeTransfer,
		TransactionTypeGoalDeposit,
		TransactionTypeGoalWithdrawal:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
}

// Effect is the change a transaction applies to its account and, when one is
// linked, to its goal.
type Effect struct {
	Account decimal.Decimal
	Goal    decimal.Decimal
}

// Negate returns the compensating effect used when a transaction is edited
// or deleted.
func (e Effect) Negate() Effect {
	return Effect{Account: e.Account.Neg(), Goal: e.Goal.Neg()}
}

// EffectOf computes the balance changes of a transaction.
//
// Money moved into a goal leaves the account (expense, goal_deposit) and money
// moved out of a goal returns to it (income, goal_withdrawal). Transfers need a
// counterpart account and are not supported.
func EffectOf(t TransactionType, amount decimal.Decimal, hasGoal bool) (Effect, error) {
	var sign int64
	switch t {
	case TransactionTypeIncome, TransactionTypeGoalWithdrawal:
		sign = 1
	case TransactionTypeExpense, TransactionTypeGoalDeposit:
		sign = -1
	default:
		return Effect{}, ErrInvalidTransactionType
	}

	if !hasGoal && (t == TransactionTypeGoalDeposit || t == TransactionTypeGoalWithdrawal) {
		return Effect{}, fmt.Errorf("%w: %s requires a goal", ErrInvalidTransactionType, t)
	}

	effect := Effect{
		Account: amount.Mul(decimal.NewFromInt(sign)),
		Goal:    decimal.Zero,
	}
	if hasGoal {
		effect.Goal = effect.Account.Neg()
	}
	return effect, nil
}

// StoredEffect is the effect an already persisted transaction had. Unlike
// EffectOf it never fails: types without an account effect yield zero, and a
// goal-typed row whose goal was deleted only affects its account.
func StoredEffect(t TransactionType, amount decimal.Decimal, hasGoal bool) Effect {
	effect := Effect{
		Account: amount.Mul(decimal.NewFromInt(int64(t.Direction()))),
		Goal:    decimal.Zero,
	}
	if hasGoal {
		effect.Goal = effect.Account.Neg()
	}
	return effect
}

// Direction returns +1 for types that add to an account balance, -1 for
// types that subtract from it and 0 for types without an account effect.
func (t TransactionType) Direction() int {
	switch t {
	case TransactionTypeIncome, TransactionTypeGoalWithdrawal:
		return 1
	case TransactionTypeExpense, TransactionTypeGoalDeposit:
		return -1
	}
	return 0
}
