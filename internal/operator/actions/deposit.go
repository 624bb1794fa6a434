package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Deposit adds money to an account and records it as income.
type Deposit struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string

	Account     *account.Account
	Transaction *transaction.Transaction
}

func (d *Deposit) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ledger.ValidateAmount(d.Amount); err != nil {
		return err
	}

	acc, err := ownedAccount(ctx, writer, d.UserID, d.AccountID, true)
	if err != nil {
		return err
	}

	acc.Balance = acc.Balance.Add(d.Amount)
	if err = writer.Accounts.UpdateBalance(ctx, acc.ID, acc.Balance); err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}

	tx, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		AccountID:   acc.ID,
		UserID:      d.UserID,
		Type:        ledger.TransactionTypeIncome,
		Amount:      d.Amount,
		Description: d.Description,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	d.Account = acc
	d.Transaction = tx
	return nil
}

// Withdraw takes money out of an account and records it as an expense. The
// balance may reach zero but never go below it.
type Withdraw struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Amount      decimal.Decimal
	Description string

	Account     *account.Account
	Transaction *transaction.Transaction
}

func (w *Withdraw) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ledger.ValidateAmount(w.Amount); err != nil {
		return err
	}

	acc, err := ownedAccount(ctx, writer, w.UserID, w.AccountID, true)
	if err != nil {
		return err
	}
	if acc.Balance.LessThan(w.Amount) {
		return ledger.ErrInsufficientFunds
	}

	acc.Balance = acc.Balance.Sub(w.Amount)
	if err = writer.Accounts.UpdateBalance(ctx, acc.ID, acc.Balance); err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}

	tx, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		AccountID:   acc.ID,
		UserID:      w.UserID,
		Type:        ledger.TransactionTypeExpense,
		Amount:      w.Amount,
		Description: w.Description,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	w.Account = acc
	w.Transaction = tx
	return nil
}
