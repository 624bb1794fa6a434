package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// GoalDeposit moves money from the goal's account into the goal. The account
// balance is not checked, so saving towards a goal can overdraw the account.
type GoalDeposit struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	Description string

	Goal        *goal.Goal
	Account     *account.Account
	Transaction *transaction.Transaction
}

func (d *GoalDeposit) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ledger.ValidateAmount(d.Amount); err != nil {
		return err
	}

	g, acc, err := lockGoalWithAccount(ctx, writer, d.UserID, d.GoalID)
	if err != nil {
		return err
	}

	g.CurrentAmount = g.CurrentAmount.Add(d.Amount)
	acc.Balance = acc.Balance.Sub(d.Amount)

	tx, err := saveGoalTransfer(ctx, writer, g, acc, &transaction.TransactionCreate{
		Type:        ledger.TransactionTypeExpense,
		Amount:      d.Amount,
		Description: d.Description,
	})
	if err != nil {
		return err
	}

	d.Goal = g
	d.Account = acc
	d.Transaction = tx
	return nil
}

// GoalWithdraw moves money from a goal back to its account.
type GoalWithdraw struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	Description string

	Goal        *goal.Goal
	Account     *account.Account
	Transaction *transaction.Transaction
}

func (w *GoalWithdraw) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ledger.ValidateAmount(w.Amount); err != nil {
		return err
	}

	g, acc, err := lockGoalWithAccount(ctx, writer, w.UserID, w.GoalID)
	if err != nil {
		return err
	}
	if g.CurrentAmount.LessThan(w.Amount) {
		return ledger.ErrInsufficientGoalFunds
	}

	g.CurrentAmount = g.CurrentAmount.Sub(w.Amount)
	acc.Balance = acc.Balance.Add(w.Amount)

	tx, err := saveGoalTransfer(ctx, writer, g, acc, &transaction.TransactionCreate{
		Type:        ledger.TransactionTypeIncome,
		Amount:      w.Amount,
		Description: w.Description,
	})
	if err != nil {
		return err
	}

	w.Goal = g
	w.Account = acc
	w.Transaction = tx
	return nil
}

// lockGoalWithAccount checks ownership of the goal, then locks its account and
// the goal in that order and re-reads the goal under the lock.
func lockGoalWithAccount(ctx context.Context, writer *storage.Writer, userID, goalID uuid.UUID) (*goal.Goal, *account.Account, error) {
	g, err := ownedGoal(ctx, writer, userID, goalID)
	if err != nil {
		return nil, nil, err
	}
	acc, err := ownedAccount(ctx, writer, userID, g.AccountID, true)
	if err != nil {
		return nil, nil, err
	}
	g, err = lockGoal(ctx, writer, goalID)
	if err != nil {
		return nil, nil, err
	}
	return g, acc, nil
}

func saveGoalTransfer(ctx context.Context, writer *storage.Writer, g *goal.Goal, acc *account.Account, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	if err := writer.Goals.UpdateCurrentAmount(ctx, g.ID, g.CurrentAmount); err != nil {
		return nil, fmt.Errorf("update goal amount: %w", err)
	}
	if err := writer.Accounts.UpdateBalance(ctx, acc.ID, acc.Balance); err != nil {
		return nil, fmt.Errorf("update account balance: %w", err)
	}

	create.AccountID = acc.ID
	create.UserID = acc.UserID
	create.GoalID = uuid.NullUUID{UUID: g.ID, Valid: true}
	tx, err := writer.Transactions.Insert(ctx, create)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return tx, nil
}
