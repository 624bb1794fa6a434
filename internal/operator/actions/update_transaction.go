package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// UpdateTransaction edits a stored transaction. The old effect is reversed
// and the new one applied in the same write, so the account balance always
// matches its log. The account of a transaction can not change.
type UpdateTransaction struct {
	UserID          uuid.UUID
	TransactionID   uuid.UUID
	Type            omit.Val[ledger.TransactionType]
	Amount          omit.Val[decimal.Decimal]
	GoalID          omit.Val[uuid.NullUUID]
	CategoryID      omit.Val[uuid.NullUUID]
	BudgetID        omit.Val[uuid.NullUUID]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]

	Transaction *transaction.Transaction
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if amount, ok := u.Amount.Get(); ok {
		if err := ledger.ValidateAmount(amount); err != nil {
			return err
		}
	}

	current, err := ownedTransaction(ctx, writer, u.UserID, u.TransactionID, false)
	if err != nil {
		return err
	}

	err = linkClassifications(ctx, writer, u.UserID, u.CategoryID.GetOr(uuid.NullUUID{}), u.BudgetID.GetOr(uuid.NullUUID{}))
	if err != nil {
		return err
	}

	sheet := newBalanceSheet()
	if err = sheet.lockAccounts(ctx, writer, u.UserID, current.AccountID); err != nil {
		return err
	}
	current, err = ownedTransaction(ctx, writer, u.UserID, u.TransactionID, true)
	if err != nil {
		return err
	}

	txType := u.Type.GetOr(current.Type)
	amount := u.Amount.GetOr(current.Amount)
	goalID := u.GoalID.GetOr(current.GoalID)
	newEffect, err := ledger.EffectOf(txType, amount, goalID.Valid)
	if err != nil {
		return err
	}

	if current.GoalID.Valid {
		if _, err = sheet.lockGoal(ctx, writer, current.GoalID.UUID); err != nil {
			return err
		}
	}
	if goalID.Valid && goalID != current.GoalID {
		if err = linkGoal(ctx, writer, sheet, u.UserID, current.AccountID, goalID.UUID); err != nil {
			return err
		}
	}

	oldEffect := ledger.StoredEffect(current.Type, current.Amount, current.GoalID.Valid)
	sheet.apply(current.AccountID, current.GoalID, oldEffect.Negate())
	sheet.apply(current.AccountID, goalID, newEffect)
	if err = sheet.validate(); err != nil {
		return err
	}
	if err = sheet.save(ctx, writer); err != nil {
		return err
	}

	err = writer.Transactions.Update(ctx, current.ID, &transaction.TransactionUpdate{
		GoalID:          u.GoalID,
		CategoryID:      u.CategoryID,
		BudgetID:        u.BudgetID,
		Type:            u.Type,
		Amount:          u.Amount,
		Description:     u.Description,
		TransactionDate: u.TransactionDate,
	})
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	updated, err := writer.Transactions.FindByID(ctx, current.ID, false)
	if err != nil {
		return fmt.Errorf("reload transaction: %w", err)
	}
	u.Transaction = updated
	return nil
}
