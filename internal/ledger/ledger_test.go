package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAmount(t *testing.T) {
	cases := map[string]bool{
		"0.01":          true,
		"50":            true,
		"150.00":        true,
		"9999999999.99": true,
		"0":             false,
		"-1":            false,
		"0.001":         false,
		"1.505":         false,
		"10000000000":   false,
	}

	for raw, valid := range cases {
		err := ValidateAmount(decimal.RequireFromString(raw))
		if valid {
			assert.NoError(t, err, raw)
		} else {
			assert.ErrorIs(t, err, ErrInvalidAmount, raw)
		}
	}
}

func TestValidateBalance_AllowsZeroAndNegative(t *testing.T) {
	assert.NoError(t, ValidateBalance(decimal.Zero))
	assert.NoError(t, ValidateBalance(decimal.RequireFromString("-25.10")))
	assert.ErrorIs(t, ValidateBalance(decimal.RequireFromString("-0.001")), ErrInvalidAmount)
}

func TestParseTransactionType(t *testing.T) {
	typ, err := ParseTransactionType("goal_withdrawal")
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeGoalWithdrawal, typ)

	_, err = ParseTransactionType("refund")
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestEffectOf(t *testing.T) {
	amount := decimal.RequireFromString("20.00")

	effect, err := EffectOf(TransactionTypeIncome, amount, false)
	require.NoError(t, err)
	assert.True(t, effect.Account.Equal(amount))
	assert.True(t, effect.Goal.IsZero())

	effect, err = EffectOf(TransactionTypeExpense, amount, true)
	require.NoError(t, err)
	assert.True(t, effect.Account.Equal(amount.Neg()))
	assert.True(t, effect.Goal.Equal(amount))

	effect, err = EffectOf(TransactionTypeGoalWithdrawal, amount, true)
	require.NoError(t, err)
	assert.True(t, effect.Account.Equal(amount))
	assert.True(t, effect.Goal.Equal(amount.Neg()))

	reversed := effect.Negate()
	assert.True(t, reversed.Account.Equal(amount.Neg()))
	assert.True(t, reversed.Goal.Equal(amount))
}

func TestEffectOf_Rejections(t *testing.T) {
	amount := decimal.RequireFromString("1.00")

	_, err := EffectOf(TransactionTypeTransfer, amount, false)
	assert.ErrorIs(t, err, ErrInvalidTransactionType)

	_, err = EffectOf(TransactionTypeGoalDeposit, amount, false)
	assert.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestStoredEffect(t *testing.T) {
	amount := decimal.RequireFromString("30.00")

	effect := StoredEffect(TransactionTypeGoalDeposit, amount, false)
	assert.True(t, effect.Account.Equal(amount.Neg()))
	assert.True(t, effect.Goal.IsZero())

	effect = StoredEffect(TransactionTypeTransfer, amount, true)
	assert.True(t, effect.Account.IsZero())
	assert.True(t, effect.Goal.IsZero())
}

func TestProgressPercent(t *testing.T) {
	target := decimal.RequireFromString("1000.00")

	assert.True(t, ProgressPercent(decimal.RequireFromString("200.00"), target).Equal(decimal.NewFromInt(20)))
	assert.True(t, ProgressPercent(decimal.RequireFromString("1500.00"), target).Equal(decimal.NewFromInt(100)))
	assert.True(t, ProgressPercent(decimal.RequireFromString("10.00"), decimal.Zero).IsZero())
}

func TestBalanceFromTotals(t *testing.T) {
	totals := map[TransactionType]decimal.Decimal{
		TransactionTypeIncome:         decimal.RequireFromString("500.00"),
		TransactionTypeExpense:        decimal.RequireFromString("120.50"),
		TransactionTypeGoalDeposit:    decimal.RequireFromString("100.00"),
		TransactionTypeGoalWithdrawal: decimal.RequireFromString("40.00"),
		TransactionTypeTransfer:       decimal.RequireFromString("999.00"),
	}

	assert.True(t, BalanceFromTotals(totals).Equal(decimal.RequireFromString("319.50")))
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(ErrNotOwner))
	assert.True(t, IsRejection(errors.Join(errors.New("context"), ErrInsufficientFunds)))
	assert.False(t, IsRejection(errors.New("connection reset")))
}
