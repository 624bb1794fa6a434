package account

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

var columns = []any{"id", "user_id", "name", "balance", "created_at"}

// Table provides access to the accounts table.
type Table struct {
	exec bob.Executor
}

// Ensure Table implements IAccountTable at compile time.
var _ IAccountTable = (*Table)(nil)

// NewTable creates a Table bound to the given executor (a DB or a Tx).
func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves an account by primary key, optionally locking the row
// until the surrounding transaction ends.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(TableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new account and returns the stored row.
func (t *Table) Insert(ctx context.Context, create *AccountCreate) (*Account, error) {
	q := psql.Insert(
		im.Into(TableName, "user_id", "name", "balance"),
		im.Values(psql.Arg(create.UserID, create.Name, create.Balance)),
		im.Returning(columns...),
	)
	return bob.One(ctx, t.exec, q, scan.StructMapper[*Account]())
}

// List returns the accounts of one user ordered by name.
func (t *Table) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(TableName),
	}
	if filter.AllUsers {
		queryMods = append(queryMods, sm.OrderBy(psql.Quote("id")).Asc())
	} else {
		queryMods = append(queryMods,
			sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
			sm.OrderBy(psql.Quote("name")).Asc(),
			sm.OrderBy(psql.Quote("id")).Asc(),
		)
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Account]())
}

// UpdateBalance updates the balance for a given account.
func (t *Table) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table(TableName),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := q.Exec(ctx, t.exec)
	return err
}

// Delete removes an account; goals and transactions cascade.
func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(TableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := q.Exec(ctx, t.exec)
	return err
}
