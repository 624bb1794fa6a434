package memory

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/rowlock"
)

type categoryTable struct {
	v view
}

var _ category.ICategoryTable = (*categoryTable)(nil)

// FindByID ignores lock; write transactions are already serialized.
func (t *categoryTable) FindByID(_ context.Context, id uuid.UUID, _ rowlock.Mode) (*category.Category, error) {
	var found *category.Category
	err := t.v.run(func(d *dataset) error {
		if row, ok := d.categories[id]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *categoryTable) Insert(_ context.Context, create *category.CategoryCreate) (*category.Category, error) {
	row := category.Category{
		ID:        newID(),
		UserID:    create.UserID,
		Name:      create.Name,
		Type:      create.Type,
		CreatedAt: t.v.now(),
	}
	err := t.v.run(func(d *dataset) error {
		d.categories[row.ID] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *categoryTable) List(_ context.Context, userID uuid.UUID) ([]*category.Category, error) {
	var rows []*category.Category
	err := t.v.run(func(d *dataset) error {
		for _, row := range d.categories {
			if row.UserID == userID {
				rows = append(rows, &row)
			}
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
	return rows, err
}

func (t *categoryTable) Update(_ context.Context, id uuid.UUID, update *category.CategoryUpdate) error {
	return t.v.run(func(d *dataset) error {
		row, ok := d.categories[id]
		if !ok {
			return nil
		}
		row.Name = update.Name.GetOr(row.Name)
		row.Type = update.Type.GetOr(row.Type)
		d.categories[id] = row
		return nil
	})
}

func (t *categoryTable) Delete(_ context.Context, id uuid.UUID) error {
	return t.v.run(func(d *dataset) error {
		delete(d.categories, id)
		for txID, tx := range d.transactions {
			if tx.CategoryID.Valid && tx.CategoryID.UUID == id {
				tx.CategoryID = uuid.NullUUID{}
				d.transactions[txID] = tx
			}
		}
		return nil
	})
}

type budgetTable struct {
	v view
}

var _ budget.IBudgetTable = (*budgetTable)(nil)

func (t *budgetTable) FindByID(_ context.Context, id uuid.UUID, _ rowlock.Mode) (*budget.Budget, error) {
	var found *budget.Budget
	err := t.v.run(func(d *dataset) error {
		if row, ok := d.budgets[id]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *budgetTable) Insert(_ context.Context, create *budget.BudgetCreate) (*budget.Budget, error) {
	row := budget.Budget{
		ID:          newID(),
		UserID:      create.UserID,
		Name:        create.Name,
		PeriodStart: create.PeriodStart,
		PeriodEnd:   create.PeriodEnd,
		TotalAmount: create.TotalAmount,
		CreatedAt:   t.v.now(),
	}
	err := t.v.run(func(d *dataset) error {
		d.budgets[row.ID] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *budgetTable) List(_ context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	var rows []*budget.Budget
	err := t.v.run(func(d *dataset) error {
		for _, row := range d.budgets {
			if row.UserID == userID {
				rows = append(rows, &row)
			}
		}
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].PeriodStart.Equal(rows[j].PeriodStart) {
			return rows[i].PeriodStart.After(rows[j].PeriodStart)
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
	return rows, err
}

func (t *budgetTable) Update(_ context.Context, id uuid.UUID, update *budget.BudgetUpdate) error {
	return t.v.run(func(d *dataset) error {
		row, ok := d.budgets[id]
		if !ok {
			return nil
		}
		row.Name = update.Name.GetOr(row.Name)
		row.PeriodStart = update.PeriodStart.GetOr(row.PeriodStart)
		row.PeriodEnd = update.PeriodEnd.GetOr(row.PeriodEnd)
		row.TotalAmount = update.TotalAmount.GetOr(row.TotalAmount)
		d.budgets[id] = row
		return nil
	})
}

func (t *budgetTable) Delete(_ context.Context, id uuid.UUID) error {
	return t.v.run(func(d *dataset) error {
		delete(d.budgets, id)
		for txID, tx := range d.transactions {
			if tx.BudgetID.Valid && tx.BudgetID.UUID == id {
				tx.BudgetID = uuid.NullUUID{}
				d.transactions[txID] = tx
			}
		}
		return nil
	})
}
