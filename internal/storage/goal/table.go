package goal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var columns = []any{
	"id", "account_id", "user_id", "name",
	"target_amount", "current_amount", "deadline", "created_at",
}

// Table provides access to the goals table.
type Table struct {
	exec bob.Executor
}

var _ IGoalTable = (*Table)(nil)

// NewTable creates a Table bound to the given executor.
func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves a goal by primary key.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Goal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(TableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Goal]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a goal with a zero current amount.
func (t *Table) Insert(ctx context.Context, create *GoalCreate) (*Goal, error) {
	q := psql.Insert(
		im.Into(TableName, "account_id", "user_id", "name", "target_amount", "current_amount", "deadline"),
		im.Values(psql.Arg(create.AccountID, create.UserID, create.Name, create.TargetAmount, decimal.Zero, create.Deadline)),
		im.Returning(columns...),
	)
	return bob.One(ctx, t.exec, q, scan.StructMapper[*Goal]())
}

// List returns goals ordered by deadline.
func (t *Table) List(ctx context.Context, filter *GoalFilter) ([]*Goal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(TableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
	}
	if filter.AccountID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
	}
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("deadline")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Goal]())
}

// Update writes the fields set on update. It is a no-op when none are set.
func (t *Table) Update(ctx context.Context, id uuid.UUID, update *GoalUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(TableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	changed := false
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(name))
		changed = true
	}
	if target, ok := update.TargetAmount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("target_amount").ToArg(target))
		changed = true
	}
	if deadline, ok := update.Deadline.Get(); ok {
		queryMods = append(queryMods, um.SetCol("deadline").ToArg(deadline))
		changed = true
	}
	if !changed {
		return nil
	}

	_, err := psql.Update(queryMods...).Exec(ctx, t.exec)
	return err
}

// UpdateCurrentAmount sets the amount saved towards the goal.
func (t *Table) UpdateCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	q := psql.Update(
		um.Table(TableName),
		um.SetCol("current_amount").ToArg(amount),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := q.Exec(ctx, t.exec)
	return err
}

// Delete removes a goal. Transactions referencing it keep existing with
// their goal reference cleared by the foreign key.
func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(TableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := q.Exec(ctx, t.exec)
	return err
}
