package service

import (
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

func accountFromStorage(row *account.Account) Account {
	return Account{
		ID:        row.ID,
		Name:      row.Name,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
	}
}

func goalFromStorage(row *goal.Goal) Goal {
	return Goal{
		ID:              row.ID,
		AccountID:       row.AccountID,
		Name:            row.Name,
		TargetAmount:    row.TargetAmount,
		CurrentAmount:   row.CurrentAmount,
		ProgressPercent: ledger.ProgressPercent(row.CurrentAmount, row.TargetAmount),
		Deadline:        row.Deadline,
		CreatedAt:       row.CreatedAt,
	}
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	return Transaction{
		ID:              row.ID,
		AccountID:       row.AccountID,
		GoalID:          row.GoalID,
		CategoryID:      row.CategoryID,
		BudgetID:        row.BudgetID,
		Type:            row.Type,
		Amount:          row.Amount,
		Description:     row.Description,
		TransactionDate: row.TransactionDate,
		CreatedAt:       row.CreatedAt,
	}
}

func transactionsFromStorage(rows []*transaction.Transaction) []Transaction {
	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted
}

func categoryFromStorage(row *category.Category) Category {
	return Category{
		ID:        row.ID,
		Name:      row.Name,
		Type:      row.Type,
		CreatedAt: row.CreatedAt,
	}
}

func budgetFromStorage(row *budget.Budget) Budget {
	return Budget{
		ID:          row.ID,
		Name:        row.Name,
		PeriodStart: row.PeriodStart,
		PeriodEnd:   row.PeriodEnd,
		TotalAmount: row.TotalAmount,
		CreatedAt:   row.CreatedAt,
	}
}
