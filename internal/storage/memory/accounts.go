package memory

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/account"
)

type accountTable struct {
	v view
}

var _ account.IAccountTable = (*accountTable)(nil)

func (t *accountTable) FindByID(_ context.Context, id uuid.UUID, _ bool) (*account.Account, error) {
	var found *account.Account
	err := t.v.run(func(d *dataset) error {
		if row, ok := d.accounts[id]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *accountTable) Insert(_ context.Context, create *account.AccountCreate) (*account.Account, error) {
	row := account.Account{
		ID:        newID(),
		UserID:    create.UserID,
		Name:      create.Name,
		Balance:   create.Balance,
		CreatedAt: t.v.now(),
	}
	err := t.v.run(func(d *dataset) error {
		d.accounts[row.ID] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *accountTable) List(_ context.Context, filter *account.AccountFilter) ([]*account.Account, error) {
	var rows []*account.Account
	err := t.v.run(func(d *dataset) error {
		for _, row := range d.accounts {
			if filter.AllUsers || row.UserID == filter.UserID {
				rows = append(rows, &row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if !filter.AllUsers && rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
	return page(rows, filter.Limit, filter.Offset), nil
}

func (t *accountTable) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return t.v.run(func(d *dataset) error {
		row, ok := d.accounts[id]
		if !ok {
			return nil
		}
		row.Balance = balance
		d.accounts[id] = row
		return nil
	})
}

// Delete cascades to goals and transactions like the foreign keys do.
func (t *accountTable) Delete(_ context.Context, id uuid.UUID) error {
	return t.v.run(func(d *dataset) error {
		delete(d.accounts, id)
		for goalID, g := range d.goals {
			if g.AccountID == id {
				delete(d.goals, goalID)
			}
		}
		for txID, tx := range d.transactions {
			if tx.AccountID == id {
				delete(d.transactions, txID)
			}
		}
		return nil
	})
}
