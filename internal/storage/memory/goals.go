package memory

import (
	"context"
	"sort"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/goal"
)

type goalTable struct {
	v view
}

var _ goal.IGoalTable = (*goalTable)(nil)

func (t *goalTable) FindByID(_ context.Context, id uuid.UUID, _ bool) (*goal.Goal, error) {
	var found *goal.Goal
	err := t.v.run(func(d *dataset) error {
		if row, ok := d.goals[id]; ok {
			found = &row
		}
		return nil
	})
	return found, err
}

func (t *goalTable) Insert(_ context.Context, create *goal.GoalCreate) (*goal.Goal, error) {
	row := goal.Goal{
		ID:            newID(),
		AccountID:     create.AccountID,
		UserID:        create.UserID,
		Name:          create.Name,
		TargetAmount:  create.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      create.Deadline,
		CreatedAt:     t.v.now(),
	}
	err := t.v.run(func(d *dataset) error {
		d.goals[row.ID] = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *goalTable) List(_ context.Context, filter *goal.GoalFilter) ([]*goal.Goal, error) {
	var rows []*goal.Goal
	err := t.v.run(func(d *dataset) error {
		for _, row := range d.goals {
			if row.UserID != filter.UserID {
				continue
			}
			if filter.AccountID != nil && row.AccountID != *filter.AccountID {
				continue
			}
			rows = append(rows, &row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Deadline.Equal(rows[j].Deadline) {
			return rows[i].Deadline.Before(rows[j].Deadline)
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})
	return page(rows, filter.Limit, filter.Offset), nil
}

func (t *goalTable) Update(_ context.Context, id uuid.UUID, update *goal.GoalUpdate) error {
	return t.v.run(func(d *dataset) error {
		row, ok := d.goals[id]
		if !ok {
			return nil
		}
		row.Name = update.Name.GetOr(row.Name)
		row.TargetAmount = update.TargetAmount.GetOr(row.TargetAmount)
		row.Deadline = update.Deadline.GetOr(row.Deadline)
		d.goals[id] = row
		return nil
	})
}

func (t *goalTable) UpdateCurrentAmount(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return t.v.run(func(d *dataset) error {
		row, ok := d.goals[id]
		if !ok {
			return nil
		}
		row.CurrentAmount = amount
		d.goals[id] = row
		return nil
	})
}

// Delete clears the goal reference of linked transactions, like ON DELETE SET NULL.
func (t *goalTable) Delete(_ context.Context, id uuid.UUID) error {
	return t.v.run(func(d *dataset) error {
		delete(d.goals, id)
		for txID, tx := range d.transactions {
			if tx.GoalID.Valid && tx.GoalID.UUID == id {
				tx.GoalID = uuid.NullUUID{}
				d.transactions[txID] = tx
			}
		}
		return nil
	})
}
