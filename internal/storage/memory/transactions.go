package memory

import (
	"context"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type transactionTable struct {
	v view
}

var _ transaction.ITransactionTable = (*transactionTable)(nil)

func (t *transactionTable) FindByID(_ context.Context, id uuid.UUID, _ bool) (*transaction.Transaction, error) {
	var found *transaction.Transaction
	err := t.v.run(func(d *dataset) error {
		if row, ok := d.transactions[id]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *transactionTable) Insert(_ context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	createdAt := t.v.now()
	txDate := create.TransactionDate
	if txDate.IsZero() {
		txDate = today(createdAt)
	}

	row := transaction.Transaction{
		ID:              newID(),
		AccountID:       create.AccountID,
		UserID:          create.UserID,
		GoalID:          create.GoalID,
		CategoryID:      create.CategoryID,
		BudgetID:        create.BudgetID,
		Type:            create.Type,
		Amount:          create.Amount,
		Description:     create.Description,
		TransactionDate: txDate,
		CreatedAt:       createdAt,
	}
	err := t.v.run(func(d *dataset) error {
		d.transactions[row.ID] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func matches(row transaction.Transaction, filter *transaction.TransactionFilter) bool {
	if filter == nil {
		return true
	}
	if filter.UserID != nil && row.UserID != *filter.UserID {
		return false
	}
	if filter.AccountID != nil && row.AccountID != *filter.AccountID {
		return false
	}
	if filter.GoalID != nil && (!row.GoalID.Valid || row.GoalID.UUID != *filter.GoalID) {
		return false
	}
	if filter.MaxCreationTime != nil && row.CreatedAt.After(*filter.MaxCreationTime) {
		return false
	}
	return true
}

func (t *transactionTable) List(_ context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	var rows []*transaction.Transaction
	err := t.v.run(func(d *dataset) error {
		for _, row := range d.transactions {
			if matches(row, filter) {
				rows = append(rows, &row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.TransactionDate.Equal(b.TransactionDate) {
			return a.TransactionDate.After(b.TransactionDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})

	if filter == nil {
		return rows, nil
	}
	return page(rows, filter.Limit, filter.Offset), nil
}

func (t *transactionTable) Update(_ context.Context, id uuid.UUID, update *transaction.TransactionUpdate) error {
	return t.v.run(func(d *dataset) error {
		row, ok := d.transactions[id]
		if !ok {
			return nil
		}
		row.GoalID = update.GoalID.GetOr(row.GoalID)
		row.CategoryID = update.CategoryID.GetOr(row.CategoryID)
		row.BudgetID = update.BudgetID.GetOr(row.BudgetID)
		row.Type = update.Type.GetOr(row.Type)
		row.Amount = update.Amount.GetOr(row.Amount)
		row.Description = update.Description.GetOr(row.Description)
		row.TransactionDate = update.TransactionDate.GetOr(row.TransactionDate)
		d.transactions[id] = row
		return nil
	})
}

func (t *transactionTable) Delete(_ context.Context, id uuid.UUID) error {
	return t.v.run(func(d *dataset) error {
		delete(d.transactions, id)
		return nil
	})
}

func (t *transactionTable) TotalsByType(_ context.Context, filter *transaction.TransactionFilter) (map[ledger.TransactionType]decimal.Decimal, error) {
	totals := map[ledger.TransactionType]decimal.Decimal{}
	err := t.v.run(func(d *dataset) error {
		for _, row := range d.transactions {
			if !matches(row, filter) {
				continue
			}
			totals[row.Type] = totals[row.Type].Add(row.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (t *transactionTable) LatestCreatedAt(_ context.Context, filter *transaction.TransactionFilter) (*time.Time, error) {
	var latest *time.Time
	err := t.v.run(func(d *dataset) error {
		for _, row := range d.transactions {
			if !matches(row, filter) {
				continue
			}
			if latest == nil || row.CreatedAt.After(*latest) {
				createdAt := row.CreatedAt
				latest = &createdAt
			}
		}
		return nil
	})
	return latest, err
}
