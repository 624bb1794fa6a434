package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const openingBalanceDescription = "Opening balance"

// CreateAccount opens an account. A non-zero starting balance is booked as an
// opening income or expense so the balance can be rebuilt from the log.
type CreateAccount struct {
	UserID          uuid.UUID
	Name            string
	StartingBalance decimal.Decimal

	Account *account.Account
}

func (c *CreateAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ledger.ErrInvalidName
	}
	if err := ledger.ValidateBalance(c.StartingBalance); err != nil {
		return err
	}

	acc, err := writer.Accounts.Insert(ctx, &account.AccountCreate{
		UserID:  c.UserID,
		Name:    c.Name,
		Balance: c.StartingBalance,
	})
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}

	if !c.StartingBalance.IsZero() {
		txType := ledger.TransactionTypeIncome
		if c.StartingBalance.IsNegative() {
			txType = ledger.TransactionTypeExpense
		}
		_, err = writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
			AccountID:   acc.ID,
			UserID:      c.UserID,
			Type:        txType,
			Amount:      c.StartingBalance.Abs(),
			Description: openingBalanceDescription,
		})
		if err != nil {
			return fmt.Errorf("insert opening transaction: %w", err)
		}
	}

	c.Account = acc
	return nil
}

// DeleteAccount removes an account together with its goals and transactions.
type DeleteAccount struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

func (d *DeleteAccount) Perform(ctx context.Context, writer *storage.Writer) error {
	acc, err := ownedAccount(ctx, writer, d.UserID, d.AccountID, true)
	if err != nil {
		return err
	}
	if err = writer.Accounts.Delete(ctx, acc.ID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
