package actions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
)

// CreateGoal adds an empty savings goal to an account.
type CreateGoal struct {
	UserID       uuid.UUID
	AccountID    uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Deadline     time.Time

	Goal *goal.Goal
}

func (c *CreateGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ledger.ErrInvalidName
	}
	if err := ledger.ValidateAmount(c.TargetAmount); err != nil {
		return err
	}
	if _, err := ownedAccount(ctx, writer, c.UserID, c.AccountID, false); err != nil {
		return err
	}

	g, err := writer.Goals.Insert(ctx, &goal.GoalCreate{
		AccountID:    c.AccountID,
		UserID:       c.UserID,
		Name:         c.Name,
		TargetAmount: c.TargetAmount,
		Deadline:     c.Deadline,
	})
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	c.Goal = g
	return nil
}

// UpdateGoal edits the descriptive fields of a goal. The current amount only
// moves through goal deposits and withdrawals.
type UpdateGoal struct {
	UserID       uuid.UUID
	GoalID       uuid.UUID
	Name         omit.Val[string]
	TargetAmount omit.Val[decimal.Decimal]
	Deadline     omit.Val[time.Time]

	Goal *goal.Goal
}

func (u *UpdateGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	if name, ok := u.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return ledger.ErrInvalidName
	}
	if target, ok := u.TargetAmount.Get(); ok {
		if err := ledger.ValidateAmount(target); err != nil {
			return err
		}
	}
	if _, err := ownedGoal(ctx, writer, u.UserID, u.GoalID); err != nil {
		return err
	}

	err := writer.Goals.Update(ctx, u.GoalID, &goal.GoalUpdate{
		Name:         u.Name,
		TargetAmount: u.TargetAmount,
		Deadline:     u.Deadline,
	})
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}

	g, err := writer.Goals.FindByID(ctx, u.GoalID, false)
	if err != nil {
		return fmt.Errorf("reload goal: %w", err)
	}
	u.Goal = g
	return nil
}

// DeleteGoal removes a goal. Transactions that were linked to it stay on the
// account with the link cleared. The funding account is locked before the
// goal, the same order every balance-changing action uses.
type DeleteGoal struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

func (d *DeleteGoal) Perform(ctx context.Context, writer *storage.Writer) error {
	g, err := ownedGoal(ctx, writer, d.UserID, d.GoalID)
	if err != nil {
		return err
	}
	if _, err = ownedAccount(ctx, writer, d.UserID, g.AccountID, true); err != nil {
		return err
	}
	if _, err = lockGoal(ctx, writer, g.ID); err != nil {
		return err
	}
	if err = writer.Goals.Delete(ctx, g.ID); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
