package transaction

import (
	"context"
	"database/sql"
	"errors"
	"time"

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

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var columns = []any{
	"id", "account_id", "user_id", "goal_id", "category_id", "budget_id",
	"type", "amount", "description", "transaction_date", "created_at",
}

var _ ITransactionTable = (*Table)(nil)

// Table provides access to the transactions table.
type Table struct {
	exec bob.Executor
}

// NewTable creates a Table bound to the given executor.
func NewTable(exec bob.Executor) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(TableName),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	if forUpdate {
		queryMods = append(queryMods, sm.ForUpdate())
	}

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Insert creates a new transaction and returns the stored row.
func (t *Table) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	cols := []string{"account_id", "user_id", "goal_id", "category_id", "budget_id", "type", "amount", "description"}
	args := []any{
		create.AccountID,
		create.UserID,
		create.GoalID,
		create.CategoryID,
		create.BudgetID,
		string(create.Type),
		create.Amount,
		create.Description,
	}
	if !create.TransactionDate.IsZero() {
		cols = append(cols, "transaction_date")
		args = append(args, create.TransactionDate)
	}

	q := psql.Insert(
		im.Into(TableName, cols...),
		im.Values(psql.Arg(args...)),
		im.Returning(columns...),
	)
	return bob.One(ctx, t.exec, q, scan.StructMapper[*Transaction]())
}

func filterMods(filter *TransactionFilter) []bob.Mod[*dialect.SelectQuery] {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if filter == nil {
		return queryMods
	}
	if filter.UserID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("user_id").EQ(psql.Arg(*filter.UserID))))
	}
	if filter.AccountID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("account_id").EQ(psql.Arg(*filter.AccountID))))
	}
	if filter.GoalID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("goal_id").EQ(psql.Arg(*filter.GoalID))))
	}
	if filter.MaxCreationTime != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}
	return queryMods
}

// List returns transactions matching the filter, newest first.
func (t *Table) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(TableName),
	}
	queryMods = append(queryMods, filterMods(filter)...)
	queryMods = append(queryMods,
		sm.OrderBy(psql.Quote("transaction_date")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	if filter != nil {
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit+1))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}

	return bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// Update writes the fields set on update. It is a no-op when none are set.
func (t *Table) Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error {
	queryMods := []bob.Mod[*dialect.UpdateQuery]{
		um.Table(TableName),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	}
	changed := false
	set := func(col string, value any) {
		queryMods = append(queryMods, um.SetCol(col).ToArg(value))
		changed = true
	}

	if v, ok := update.GoalID.Get(); ok {
		set("goal_id", v)
	}
	if v, ok := update.CategoryID.Get(); ok {
		set("category_id", v)
	}
	if v, ok := update.BudgetID.Get(); ok {
		set("budget_id", v)
	}
	if v, ok := update.Type.Get(); ok {
		set("type", string(v))
	}
	if v, ok := update.Amount.Get(); ok {
		set("amount", v)
	}
	if v, ok := update.Description.Get(); ok {
		set("description", v)
	}
	if v, ok := update.TransactionDate.Get(); ok {
		set("transaction_date", v)
	}
	if !changed {
		return nil
	}

	_, err := psql.Update(queryMods...).Exec(ctx, t.exec)
	return err
}

// Delete removes a transaction.
func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(TableName),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	_, err := q.Exec(ctx, t.exec)
	return err
}

type typeTotal struct {
	Type  ledger.TransactionType `db:"type"`
	Total decimal.Decimal        `db:"total"`
}

// TotalsByType sums transaction amounts per type. Paging fields of the
// filter are ignored.
func (t *Table) TotalsByType(ctx context.Context, filter *TransactionFilter) (map[ledger.TransactionType]decimal.Decimal, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("type", "COALESCE(SUM(amount), 0) AS total"),
		sm.From(TableName),
	}
	queryMods = append(queryMods, filterMods(filter)...)
	queryMods = append(queryMods, sm.GroupBy("type"))

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[typeTotal]())
	if err != nil {
		return nil, err
	}

	totals := make(map[ledger.TransactionType]decimal.Decimal, len(rows))
	for _, row := range rows {
		totals[row.Type] = row.Total
	}
	return totals, nil
}

type latestRow struct {
	Latest sql.NullTime `db:"latest"`
}

// LatestCreatedAt returns the newest creation time among the matching rows,
// or nil when none match. Paging fields of the filter are ignored.
func (t *Table) LatestCreatedAt(ctx context.Context, filter *TransactionFilter) (*time.Time, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns("MAX(created_at) AS latest"),
		sm.From(TableName),
	}
	queryMods = append(queryMods, filterMods(filter)...)

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[latestRow]())
	if err != nil {
		return nil, err
	}
	if !row.Latest.Valid {
		return nil, nil
	}
	return &row.Latest.Time, nil
}
