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
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/rowlock"
)

type CreateCategory struct {
	UserID uuid.UUID
	Name   string
	Type   ledger.TransactionType

	Category *category.Category
}

func (c *CreateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ledger.ErrInvalidName
	}
	if err := validateCategoryType(c.Type); err != nil {
		return err
	}

	created, err := writer.Categories.Insert(ctx, &category.CategoryCreate{
		UserID: c.UserID,
		Name:   c.Name,
		Type:   c.Type,
	})
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	c.Category = created
	return nil
}

// UpdateCategory renames a category or switches it between income and
// expense. Transactions filed under it are not touched.
type UpdateCategory struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       omit.Val[string]
	Type       omit.Val[ledger.TransactionType]

	Category *category.Category
}

func (u *UpdateCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if name, ok := u.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return ledger.ErrInvalidName
	}
	if categoryType, ok := u.Type.Get(); ok {
		if err := validateCategoryType(categoryType); err != nil {
			return err
		}
	}
	if _, err := ownedCategory(ctx, writer, u.UserID, u.CategoryID, rowlock.Update); err != nil {
		return err
	}

	err := writer.Categories.Update(ctx, u.CategoryID, &category.CategoryUpdate{
		Name: u.Name,
		Type: u.Type,
	})
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	c, err := writer.Categories.FindByID(ctx, u.CategoryID, rowlock.None)
	if err != nil {
		return fmt.Errorf("reload category: %w", err)
	}
	u.Category = c
	return nil
}

type DeleteCategory struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

func (d *DeleteCategory) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ownedCategory(ctx, writer, d.UserID, d.CategoryID, rowlock.Update); err != nil {
		return err
	}
	if err := writer.Categories.Delete(ctx, d.CategoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

type CreateBudget struct {
	UserID      uuid.UUID
	Name        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalAmount decimal.Decimal

	Budget *budget.Budget
}

func (c *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ledger.ErrInvalidName
	}
	if err := ledger.ValidateAmount(c.TotalAmount); err != nil {
		return err
	}
	if c.PeriodEnd.Before(c.PeriodStart) {
		return ledger.ErrInvalidPeriod
	}

	created, err := writer.Budgets.Insert(ctx, &budget.BudgetCreate{
		UserID:      c.UserID,
		Name:        c.Name,
		PeriodStart: c.PeriodStart,
		PeriodEnd:   c.PeriodEnd,
		TotalAmount: c.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	c.Budget = created
	return nil
}

// UpdateBudget edits a budget. The period is checked against the stored
// bounds when only one of them changes.
type UpdateBudget struct {
	UserID      uuid.UUID
	BudgetID    uuid.UUID
	Name        omit.Val[string]
	PeriodStart omit.Val[time.Time]
	PeriodEnd   omit.Val[time.Time]
	TotalAmount omit.Val[decimal.Decimal]

	Budget *budget.Budget
}

func (u *UpdateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if name, ok := u.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return ledger.ErrInvalidName
	}
	if total, ok := u.TotalAmount.Get(); ok {
		if err := ledger.ValidateAmount(total); err != nil {
			return err
		}
	}
	current, err := ownedBudget(ctx, writer, u.UserID, u.BudgetID, rowlock.Update)
	if err != nil {
		return err
	}
	if u.PeriodEnd.GetOr(current.PeriodEnd).Before(u.PeriodStart.GetOr(current.PeriodStart)) {
		return ledger.ErrInvalidPeriod
	}

	err = writer.Budgets.Update(ctx, u.BudgetID, &budget.BudgetUpdate{
		Name:        u.Name,
		PeriodStart: u.PeriodStart,
		PeriodEnd:   u.PeriodEnd,
		TotalAmount: u.TotalAmount,
	})
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}

	b, err := writer.Budgets.FindByID(ctx, u.BudgetID, rowlock.None)
	if err != nil {
		return fmt.Errorf("reload budget: %w", err)
	}
	u.Budget = b
	return nil
}

type DeleteBudget struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

func (d *DeleteBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := ownedBudget(ctx, writer, d.UserID, d.BudgetID, rowlock.Update); err != nil {
		return err
	}
	if err := writer.Budgets.Delete(ctx, d.BudgetID); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

func validateCategoryType(t ledger.TransactionType) error {
	if t != ledger.TransactionTypeIncome && t != ledger.TransactionTypeExpense {
		return ledger.ErrInvalidTransactionType
	}
	return nil
}
