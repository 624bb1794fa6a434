package budget

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/rowlock"
)

// TableName is the budgets table.
const TableName = "budgets"

// Budget is a spending limit over a date range.
type Budget struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Name        string          `db:"name"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	CreatedAt   time.Time       `db:"created_at"`
}

// BudgetCreate is the input for creating a budget.
type BudgetCreate struct {
	UserID      uuid.UUID
	Name        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalAmount decimal.Decimal
}

// BudgetUpdate carries the fields that may be edited. Unset fields are left
// untouched.
type BudgetUpdate struct {
	Name        omit.Val[string]
	PeriodStart omit.Val[time.Time]
	PeriodEnd   omit.Val[time.Time]
	TotalAmount omit.Val[decimal.Decimal]
}

// IBudgetTable defines the interface for budget storage operations.
type IBudgetTable interface {
	FindByID(ctx context.Context, id uuid.UUID, lock rowlock.Mode) (*Budget, error)
	Insert(ctx context.Context, create *BudgetCreate) (*Budget, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	Update(ctx context.Context, id uuid.UUID, update *BudgetUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
