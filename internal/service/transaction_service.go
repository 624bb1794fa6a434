package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// TransactionService reads the transaction log and edits entries in it.
type TransactionService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor ActionProcessor) *TransactionService {
	return &TransactionService{storage: store, processor: processor}
}

func (s *TransactionService) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Reader.Transactions.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ledger.ErrNotFound
	}
	if row.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	tx := transactionFromStorage(row)
	return &tx, nil
}

// ListTransactions returns a page of the user's transactions, newest first,
// using cursor-based pagination.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, filter TransactionFilter, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	} else {
		// Later pages only see rows that existed when the first page was read.
		// The pin is the newest stored creation time, so it comes from the
		// same clock that stamped created_at.
		latest, err := s.storage.Reader.Transactions.LatestCreatedAt(ctx, &transaction.TransactionFilter{
			UserID:    &userID,
			AccountID: filter.AccountID,
			GoalID:    filter.GoalID,
		})
		if err != nil {
			return nil, nil, err
		}
		if latest == nil {
			return nil, nil, nil
		}
		maxCreationTime = latest
	}

	rows, err := s.storage.Reader.Transactions.List(ctx, &transaction.TransactionFilter{
		UserID:          &userID,
		AccountID:       filter.AccountID,
		GoalID:          filter.GoalID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	rows, more := pageOf(rows, limit)
	if more {
		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: *maxCreationTime,
		}
	}

	return transactionsFromStorage(rows), nextCursor, nil
}

func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, id uuid.UUID, update TransactionUpdate) (*Transaction, error) {
	action := &actions.UpdateTransaction{
		UserID:          userID,
		TransactionID:   id,
		Type:            update.Type,
		Amount:          update.Amount,
		GoalID:          update.GoalID,
		CategoryID:      update.CategoryID,
		BudgetID:        update.BudgetID,
		Description:     update.Description,
		TransactionDate: update.TransactionDate,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	tx := transactionFromStorage(action.Transaction)
	return &tx, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteTransaction{UserID: userID, TransactionID: id})
}
