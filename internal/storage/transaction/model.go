package transaction

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// TableName is the transactions table.
const TableName = "transactions"

// Transaction represents one money movement on an account.
type Transaction struct {
	ID              uuid.UUID              `db:"id"`
	AccountID       uuid.UUID              `db:"account_id"`
	UserID          uuid.UUID              `db:"user_id"`
	GoalID          uuid.NullUUID          `db:"goal_id"`
	CategoryID      uuid.NullUUID          `db:"category_id"`
	BudgetID        uuid.NullUUID          `db:"budget_id"`
	Type            ledger.TransactionType `db:"type"`
	Amount          decimal.Decimal        `db:"amount"`
	Description     string                 `db:"description"`
	TransactionDate time.Time              `db:"transaction_date"`
	CreatedAt       time.Time              `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	AccountID       uuid.UUID
	UserID          uuid.UUID
	GoalID          uuid.NullUUID
	CategoryID      uuid.NullUUID
	BudgetID        uuid.NullUUID
	Type            ledger.TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time // defaults to today if zero
}

// TransactionUpdate carries the fields to change. Unset fields are left untouched.
type TransactionUpdate struct {
	GoalID          omit.Val[uuid.NullUUID]
	CategoryID      omit.Val[uuid.NullUUID]
	BudgetID        omit.Val[uuid.NullUUID]
	Type            omit.Val[ledger.TransactionType]
	Amount          omit.Val[decimal.Decimal]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// TransactionFilter specifies filters for listing and totalling transactions.
type TransactionFilter struct {
	UserID          *uuid.UUID
	AccountID       *uuid.UUID
	GoalID          *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// ITransactionTable defines the interface for transaction storage operations.
// FindByID returns nil without an error when no row matches. List returns up
// to Limit+1 rows, newest first.
type ITransactionTable interface {
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Update(ctx context.Context, id uuid.UUID, update *TransactionUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
	TotalsByType(ctx context.Context, filter *TransactionFilter) (map[ledger.TransactionType]decimal.Decimal, error)
	LatestCreatedAt(ctx context.Context, filter *TransactionFilter) (*time.Time, error)
}
