package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

const recentTransactions = 5

// SummaryService builds the dashboard numbers.
type SummaryService struct {
	storage *storage.Storage
}

func NewSummaryService(store *storage.Storage) *SummaryService {
	return &SummaryService{storage: store}
}

// GetSummary totals the user's income and expense transactions and returns
// the latest few entries.
func (s *SummaryService) GetSummary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	totals, err := s.storage.Reader.Transactions.TotalsByType(ctx, &transaction.TransactionFilter{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("total transactions: %w", err)
	}

	rows, err := s.storage.Reader.Transactions.List(ctx, &transaction.TransactionFilter{
		UserID: &userID,
		Limit:  recentTransactions,
	})
	if err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	rows, _ = pageOf(rows, recentTransactions)

	return &Summary{
		TotalIncome:  totals[ledger.TransactionTypeIncome],
		TotalExpense: totals[ledger.TransactionTypeExpense],
		Recent:       transactionsFromStorage(rows),
	}, nil
}
