package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

const defaultLimit = 20

// ActionProcessor runs a mutation inside one write transaction.
// *operator.OperatorDelegator satisfies it.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Ledger      *LedgerService
	Account     *AccountService
	Goal        *GoalService
	Transaction *TransactionService
	Category    *CategoryService
	Budget      *BudgetService
	Summary     *SummaryService
	Audit       *AuditService
}

// NewService creates a new Service. Reads go to store, writes go through processor.
func NewService(store *storage.Storage, processor ActionProcessor) *Service {
	return &Service{
		Ledger:      NewLedgerService(processor),
		Account:     NewAccountService(store, processor),
		Goal:        NewGoalService(store, processor),
		Transaction: NewTransactionService(store, processor),
		Category:    NewCategoryService(store, processor),
		Budget:      NewBudgetService(store, processor),
		Summary:     NewSummaryService(store),
		Audit:       NewAuditService(store),
	}
}

// pageOf trims the limit+1 probe row and reports whether another page exists.
func pageOf[T any](rows []T, limit int) ([]T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
