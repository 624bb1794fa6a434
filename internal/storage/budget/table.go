package budget

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/storage/rowlock"
)

var columns = []any{"id", "user_id", "name", "period_start", "period_end", "total_amount", "created_at"}

var _ IBudgetTable = (*Table)(nil)

// Table provides access to the budgets table.
type Table struct {
	exec bob.Executor
}

// NewTable creates a Table bound to the given executor.
func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

func (t *Table) FindByID(ctx context.Context, id uuid.UUID, lock rowlock.Mode) (*Budget, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(TableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	queryMods = append(queryMods, rowlock.Mods(lock)...)

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (t *Table) Insert(ctx context.Context, create *BudgetCreate) (*Budget, error) {
	q := psql.Insert(
		im.Into(TableName, "user_id", "name", "period_start", "period_end", "total_amount"),
		im.Values(psql.Arg(create.UserID, create.Name, create.PeriodStart, create.PeriodEnd, create.TotalAmount)),
		im.Returning(columns...),
	)
	return bob.One(ctx, t.exec, q, scan.StructMapper[*Budget]())
}

// List returns the budgets of one user, most recent period first.
func (t *Table) List(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	q := psql.Select(
		sm.Columns(columns...),
		sm.From(TableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy(psql.Quote("period_start")).Desc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	)
	return bob.All(ctx, t.exec, q, scan.StructMapper[*Budget]())
}

// Update writes the fields set on update. It is a no-op when none are set.
func (t *Table) Update(ctx context.Context, id uuid.UUID, update *BudgetUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(TableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	changed := false
	if name, ok := update.Name.Get(); ok {
		queryMods = append(queryMods, um.SetCol("name").ToArg(name))
		changed = true
	}
	if start, ok := update.PeriodStart.Get(); ok {
		queryMods = append(queryMods, um.SetCol("period_start").ToArg(start))
		changed = true
	}
	if end, ok := update.PeriodEnd.Get(); ok {
		queryMods = append(queryMods, um.SetCol("period_end").ToArg(end))
		changed = true
	}
	if total, ok := update.TotalAmount.Get(); ok {
		queryMods = append(queryMods, um.SetCol("total_amount").ToArg(total))
		changed = true
	}
	if !changed {
		return nil
	}

	_, err := psql.Update(queryMods...).Exec(ctx, t.exec)
	return err
}

func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(TableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := q.Exec(ctx, t.exec)
	return err
}
