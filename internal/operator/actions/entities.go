package actions

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
	"github.com/carson-networks/ledger-server/internal/storage/rowlock"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func ownedAccount(ctx context.Context, writer *storage.Writer, userID, accountID uuid.UUID, forUpdate bool) (*account.Account, error) {
	acc, err := writer.Accounts.FindByID(ctx, accountID, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acc == nil {
		return nil, fmt.Errorf("account %s: %w", accountID, ledger.ErrNotFound)
	}
	if acc.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	return acc, nil
}

// ownedGoal checks the goal exists and belongs to userID without locking it.
// Callers lock the funding account before calling lockGoal.
func ownedGoal(ctx context.Context, writer *storage.Writer, userID, goalID uuid.UUID) (*goal.Goal, error) {
	g, err := writer.Goals.FindByID(ctx, goalID, false)
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("goal %s: %w", goalID, ledger.ErrNotFound)
	}
	if g.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	return g, nil
}

func lockGoal(ctx context.Context, writer *storage.Writer, goalID uuid.UUID) (*goal.Goal, error) {
	g, err := writer.Goals.FindByID(ctx, goalID, true)
	if err != nil {
		return nil, fmt.Errorf("lock goal: %w", err)
	}
	if g == nil {
		return nil, fmt.Errorf("goal %s: %w", goalID, ledger.ErrNotFound)
	}
	return g, nil
}

func ownedTransaction(ctx context.Context, writer *storage.Writer, userID, transactionID uuid.UUID, forUpdate bool) (*transaction.Transaction, error) {
	tx, err := writer.Transactions.FindByID(ctx, transactionID, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, ledger.ErrNotFound)
	}
	if tx.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	return tx, nil
}

func ownedCategory(ctx context.Context, writer *storage.Writer, userID, id uuid.UUID, lock rowlock.Mode) (*category.Category, error) {
	c, err := writer.Categories.FindByID(ctx, id, lock)
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("category %s: %w", id, ledger.ErrNotFound)
	}
	if c.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	return c, nil
}

func ownedBudget(ctx context.Context, writer *storage.Writer, userID, id uuid.UUID, lock rowlock.Mode) (*budget.Budget, error) {
	b, err := writer.Budgets.FindByID(ctx, id, lock)
	if err != nil {
		return nil, fmt.Errorf("load budget: %w", err)
	}
	if b == nil {
		return nil, fmt.Errorf("budget %s: %w", id, ledger.ErrNotFound)
	}
	if b.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	return b, nil
}

// linkClassifications checks the category and budget a transaction is about
// to reference and key-share locks them so neither can be deleted before the
// write commits. It must run before any account is locked.
func linkClassifications(ctx context.Context, writer *storage.Writer, userID uuid.UUID, categoryID, budgetID uuid.NullUUID) error {
	if categoryID.Valid {
		if _, err := ownedCategory(ctx, writer, userID, categoryID.UUID, rowlock.KeyShare); err != nil {
			return err
		}
	}
	if budgetID.Valid {
		if _, err := ownedBudget(ctx, writer, userID, budgetID.UUID, rowlock.KeyShare); err != nil {
			return err
		}
	}
	return nil
}

// balanceSheet collects the locked accounts and goals an action touches and
// applies effects to them in memory. Nothing reaches storage until save, so a
// failed check leaves the rows as they were.
type balanceSheet struct {
	accounts map[uuid.UUID]*account.Account
	goals    map[uuid.UUID]*goal.Goal
	touched  map[uuid.UUID]bool
}

func newBalanceSheet() *balanceSheet {
	return &balanceSheet{
		accounts: map[uuid.UUID]*account.Account{},
		goals:    map[uuid.UUID]*goal.Goal{},
		touched:  map[uuid.UUID]bool{},
	}
}

// lockAccounts locks the given accounts of userID in key order so two
// actions touching the same pair of accounts can not deadlock.
func (b *balanceSheet) lockAccounts(ctx context.Context, writer *storage.Writer, userID uuid.UUID, ids ...uuid.UUID) error {
	ids = slices.Clone(ids)
	slices.SortFunc(ids, func(x, y uuid.UUID) int { return bytes.Compare(x[:], y[:]) })
	for _, id := range slices.Compact(ids) {
		if _, ok := b.accounts[id]; ok {
			continue
		}
		acc, err := ownedAccount(ctx, writer, userID, id, true)
		if err != nil {
			return err
		}
		b.accounts[id] = acc
	}
	return nil
}

// lockGoal locks an already ownership-checked goal. Its account must be
// locked first.
func (b *balanceSheet) lockGoal(ctx context.Context, writer *storage.Writer, goalID uuid.UUID) (*goal.Goal, error) {
	if g, ok := b.goals[goalID]; ok {
		return g, nil
	}
	g, err := lockGoal(ctx, writer, goalID)
	if err != nil {
		return nil, err
	}
	b.goals[goalID] = g
	return g, nil
}

func (b *balanceSheet) apply(accountID uuid.UUID, goalID uuid.NullUUID, effect ledger.Effect) {
	acc := b.accounts[accountID]
	acc.Balance = acc.Balance.Add(effect.Account)
	b.touched[accountID] = true

	if goalID.Valid {
		g := b.goals[goalID.UUID]
		g.CurrentAmount = g.CurrentAmount.Add(effect.Goal)
		b.touched[goalID.UUID] = true
	}
}

func (b *balanceSheet) validate() error {
	for _, g := range b.goals {
		if g.CurrentAmount.IsNegative() {
			return ledger.ErrInsufficientGoalFunds
		}
	}
	return nil
}

func (b *balanceSheet) save(ctx context.Context, writer *storage.Writer) error {
	for id, acc := range b.accounts {
		if !b.touched[id] {
			continue
		}
		if err := writer.Accounts.UpdateBalance(ctx, id, acc.Balance); err != nil {
			return fmt.Errorf("update account balance: %w", err)
		}
	}
	for id, g := range b.goals {
		if !b.touched[id] {
			continue
		}
		if err := writer.Goals.UpdateCurrentAmount(ctx, id, g.CurrentAmount); err != nil {
			return fmt.Errorf("update goal amount: %w", err)
		}
	}
	return nil
}
