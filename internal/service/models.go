package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Account represents an account in the service layer.
type Account struct {
	ID        uuid.UUID
	Name      string
	Balance   decimal.Decimal
	CreatedAt time.Time
}

// AccountCursor identifies a position in a paginated result set.
type AccountCursor struct {
	Position int
	Limit    int
}

// Reconciliation compares the stored balance of an account with the balance
// rebuilt from its transactions. Drift is zero for a consistent account.
type Reconciliation struct {
	AccountID      uuid.UUID
	UserID         uuid.UUID
	StoredBalance  decimal.Decimal
	DerivedBalance decimal.Decimal
	Drift          decimal.Decimal
}

// Goal represents a savings goal in the service layer.
type Goal struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	Name            string
	TargetAmount    decimal.Decimal
	CurrentAmount   decimal.Decimal
	ProgressPercent decimal.Decimal
	Deadline        time.Time
	CreatedAt       time.Time
}

// GoalCursor identifies a position in a paginated result set.
type GoalCursor struct {
	Position int
	Limit    int
}

// GoalUpdate carries the goal fields to change.
type GoalUpdate struct {
	Name         omit.Val[string]
	TargetAmount omit.Val[decimal.Decimal]
	Deadline     omit.Val[time.Time]
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	GoalID          uuid.NullUUID
	CategoryID      uuid.NullUUID
	BudgetID        uuid.NullUUID
	Type            ledger.TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
	CreatedAt       time.Time
}

// TransactionCreate is the input of RecordTransaction.
type TransactionCreate struct {
	AccountID       uuid.UUID
	GoalID          uuid.NullUUID
	CategoryID      uuid.NullUUID
	BudgetID        uuid.NullUUID
	Type            ledger.TransactionType
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time
}

// TransactionUpdate carries the transaction fields to change.
type TransactionUpdate struct {
	GoalID          omit.Val[uuid.NullUUID]
	CategoryID      omit.Val[uuid.NullUUID]
	BudgetID        omit.Val[uuid.NullUUID]
	Type            omit.Val[ledger.TransactionType]
	Amount          omit.Val[decimal.Decimal]
	Description     omit.Val[string]
	TransactionDate omit.Val[time.Time]
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	AccountID *uuid.UUID
	GoalID    *uuid.UUID
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// Movement is the outcome of a deposit or withdrawal. Goal is set for goal
// deposits and withdrawals.
type Movement struct {
	Account     Account
	Goal        *Goal
	Transaction Transaction
}

type Category struct {
	ID        uuid.UUID
	Name      string
	Type      ledger.TransactionType
	CreatedAt time.Time
}

// CategoryUpdate carries the category fields to change.
type CategoryUpdate struct {
	Name omit.Val[string]
	Type omit.Val[ledger.TransactionType]
}

type Budget struct {
	ID          uuid.UUID
	Name        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// BudgetUpdate carries the budget fields to change.
type BudgetUpdate struct {
	Name        omit.Val[string]
	PeriodStart omit.Val[time.Time]
	PeriodEnd   omit.Val[time.Time]
	TotalAmount omit.Val[decimal.Decimal]
}

// Summary is the dashboard view of one user's money.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Recent       []Transaction
}
