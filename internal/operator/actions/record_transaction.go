package actions

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// RecordTransaction stores a transaction of any supported type and applies
// its effect to the account and, when linked, the goal.
type RecordTransaction struct {
	UserID          uuid.UUID
	AccountID       uuid.UUID
	Type            ledger.TransactionType
	Amount          decimal.Decimal
	GoalID          uuid.NullUUID
	CategoryID      uuid.NullUUID
	BudgetID        uuid.NullUUID
	Description     string
	TransactionDate time.Time

	Transaction *transaction.Transaction
}

func (r *RecordTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ledger.ValidateAmount(r.Amount); err != nil {
		return err
	}
	effect, err := ledger.EffectOf(r.Type, r.Amount, r.GoalID.Valid)
	if err != nil {
		return err
	}

	if err = linkClassifications(ctx, writer, r.UserID, r.CategoryID, r.BudgetID); err != nil {
		return err
	}

	sheet := newBalanceSheet()
	if err = sheet.lockAccounts(ctx, writer, r.UserID, r.AccountID); err != nil {
		return err
	}
	if r.GoalID.Valid {
		if err = linkGoal(ctx, writer, sheet, r.UserID, r.AccountID, r.GoalID.UUID); err != nil {
			return err
		}
	}
	sheet.apply(r.AccountID, r.GoalID, effect)
	if err = sheet.validate(); err != nil {
		return err
	}
	if err = sheet.save(ctx, writer); err != nil {
		return err
	}

	tx, err := writer.Transactions.Insert(ctx, &transaction.TransactionCreate{
		AccountID:       r.AccountID,
		UserID:          r.UserID,
		GoalID:          r.GoalID,
		CategoryID:      r.CategoryID,
		BudgetID:        r.BudgetID,
		Type:            r.Type,
		Amount:          r.Amount,
		Description:     r.Description,
		TransactionDate: r.TransactionDate,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	r.Transaction = tx
	return nil
}

// linkGoal checks that goalID belongs to userID and is funded from
// accountID, then locks it. accountID must already be locked.
func linkGoal(ctx context.Context, writer *storage.Writer, sheet *balanceSheet, userID, accountID, goalID uuid.UUID) error {
	g, err := ownedGoal(ctx, writer, userID, goalID)
	if err != nil {
		return err
	}
	if g.AccountID != accountID {
		return ledger.ErrGoalAccountMismatch
	}
	_, err = sheet.lockGoal(ctx, writer, goalID)
	return err
}
