package goal

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TableName is the goals table.
const TableName = "goals"

// Goal represents a savings goal funded from one account.
type Goal struct {
	ID            uuid.UUID       `db:"id"`
	AccountID     uuid.UUID       `db:"account_id"`
	UserID        uuid.UUID       `db:"user_id"`
	Name          string          `db:"name"`
	TargetAmount  decimal.Decimal `db:"target_amount"`
	CurrentAmount decimal.Decimal `db:"current_amount"`
	Deadline      time.Time       `db:"deadline"`
	CreatedAt     time.Time       `db:"created_at"`
}

// GoalCreate is the input for creating a goal. Goals always start empty.
type GoalCreate struct {
	AccountID    uuid.UUID
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Deadline     time.Time
}

// GoalUpdate carries the descriptive fields that may be edited. Unset fields
// are left untouched.
type GoalUpdate struct {
	Name         omit.Val[string]
	TargetAmount omit.Val[decimal.Decimal]
	Deadline     omit.Val[time.Time]
}

// GoalFilter specifies filters for listing goals.
type GoalFilter struct {
	UserID    uuid.UUID
	AccountID *uuid.UUID
	Limit     int
	Offset    int
}

// IGoalTable defines the interface for goal storage operations.
// FindByID returns nil without an error when no row matches.
type IGoalTable interface {
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Goal, error)
	Insert(ctx context.Context, create *GoalCreate) (*Goal, error)
	List(ctx context.Context, filter *GoalFilter) ([]*Goal, error)
	Update(ctx context.Context, id uuid.UUID, update *GoalUpdate) error
	UpdateCurrentAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
