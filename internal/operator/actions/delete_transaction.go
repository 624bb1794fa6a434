package actions

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// DeleteTransaction removes a transaction and reverses its effect.
type DeleteTransaction struct {
	UserID        uuid.UUID
	TransactionID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	current, err := ownedTransaction(ctx, writer, d.UserID, d.TransactionID, false)
	if err != nil {
		return err
	}

	sheet := newBalanceSheet()
	if err = sheet.lockAccounts(ctx, writer, d.UserID, current.AccountID); err != nil {
		return err
	}
	current, err = ownedTransaction(ctx, writer, d.UserID, d.TransactionID, true)
	if err != nil {
		return err
	}
	if current.GoalID.Valid {
		if _, err = sheet.lockGoal(ctx, writer, current.GoalID.UUID); err != nil {
			return err
		}
	}

	effect := ledger.StoredEffect(current.Type, current.Amount, current.GoalID.Valid)
	sheet.apply(current.AccountID, current.GoalID, effect.Negate())
	if err = sheet.validate(); err != nil {
		return err
	}
	if err = sheet.save(ctx, writer); err != nil {
		return err
	}

	if err = writer.Transactions.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}
