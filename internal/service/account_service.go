package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

// AccountService handles account business logic.
type AccountService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewAccountService creates a new AccountService.
func NewAccountService(store *storage.Storage, processor ActionProcessor) *AccountService {
	return &AccountService{storage: store, processor: processor}
}

// CreateAccount opens an account with an optional starting balance.
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, name string, startingBalance decimal.Decimal) (*Account, error) {
	action := &actions.CreateAccount{
		UserID:          userID,
		Name:            name,
		StartingBalance: startingBalance,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return nil, err
	}
	acc := accountFromStorage(action.Account)
	return &acc, nil
}

// GetAccount retrieves an account of userID.
func (s *AccountService) GetAccount(ctx context.Context, userID, id uuid.UUID) (*Account, error) {
	row, err := s.storage.Reader.Accounts.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ledger.ErrNotFound
	}
	if row.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	acc := accountFromStorage(row)
	return &acc, nil
}

// ListAccounts returns a page of the user's accounts using cursor pagination.
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID, cursor *AccountCursor) ([]Account, *AccountCursor, error) {
	limit := defaultLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Reader.Accounts.List(ctx, &account.AccountFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *AccountCursor
	rows, more := pageOf(rows, limit)
	if more {
		nextCursor = &AccountCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Account, len(rows))
	for i, row := range rows {
		converted[i] = accountFromStorage(row)
	}
	return converted, nextCursor, nil
}

// DeleteAccount removes an account with its goals and transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteAccount{UserID: userID, AccountID: id})
}

// Reconcile rebuilds the balance of an account from its transactions and
// compares it with the stored balance. Both are read from one snapshot.
func (s *AccountService) Reconcile(ctx context.Context, userID, id uuid.UUID) (rec *Reconciliation, err error) {
	snap, err := s.storage.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := snap.Release(ctx); err == nil && releaseErr != nil {
			err = releaseErr
		}
	}()

	row, err := snap.Accounts.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ledger.ErrNotFound
	}
	if row.UserID != userID {
		return nil, ledger.ErrNotOwner
	}
	return reconcile(ctx, snap.Tables, row)
}

func reconcile(ctx context.Context, tables storage.Tables, acc *account.Account) (*Reconciliation, error) {
	totals, err := tables.Transactions.TotalsByType(ctx, &transaction.TransactionFilter{AccountID: &acc.ID})
	if err != nil {
		return nil, fmt.Errorf("total transactions: %w", err)
	}
	derived := ledger.BalanceFromTotals(totals)

	return &Reconciliation{
		AccountID:      acc.ID,
		UserID:         acc.UserID,
		StoredBalance:  acc.Balance,
		DerivedBalance: derived,
		Drift:          acc.Balance.Sub(derived),
	}, nil
}
