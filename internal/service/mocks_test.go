package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

type mockTransactionTable struct {
	mock.Mock
}

var _ transaction.ITransactionTable = (*mockTransactionTable)(nil)

func (m *mockTransactionTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*transaction.Transaction, error) {
	args := m.Called(ctx, id, forUpdate)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) Insert(ctx context.Context, create *transaction.TransactionCreate) (*transaction.Transaction, error) {
	args := m.Called(ctx, create)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionTable) Update(ctx context.Context, id uuid.UUID, update *transaction.TransactionUpdate) error {
	return m.Called(ctx, id, update).Error(0)
}

func (m *mockTransactionTable) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTransactionTable) TotalsByType(ctx context.Context, filter *transaction.TransactionFilter) (map[ledger.TransactionType]decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	totals, _ := args.Get(0).(map[ledger.TransactionType]decimal.Decimal)
	return totals, args.Error(1)
}

func (m *mockTransactionTable) LatestCreatedAt(ctx context.Context, filter *transaction.TransactionFilter) (*time.Time, error) {
	args := m.Called(ctx, filter)
	latest, _ := args.Get(0).(*time.Time)
	return latest, args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	return m.Called(ctx, action).Error(0)
}
