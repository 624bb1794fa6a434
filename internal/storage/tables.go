package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// Tables groups the per-table accessors bound to one executor.
type Tables struct {
	Accounts     account.IAccountTable
	Goals        goal.IGoalTable
	Transactions transaction.ITransactionTable
	Categories   category.ICategoryTable
	Budgets      budget.IBudgetTable
}

// NewTables binds the postgres table implementations to exec.
func NewTables(exec bob.Executor) Tables {
	return Tables{
		Accounts:     account.NewTable(exec),
		Goals:        goal.NewTable(exec),
		Transactions: transaction.NewTable(exec),
		Categories:   category.NewTable(exec),
		Budgets:      budget.NewTable(exec),
	}
}
