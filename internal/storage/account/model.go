package account

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// TableName is the accounts table.
const TableName = "accounts"

// Account represents an account record.
type Account struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Name      string          `db:"name"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
}

// AccountCreate is the input for creating a new account.
type AccountCreate struct {
	UserID  uuid.UUID
	Name    string
	Balance decimal.Decimal
}

// AccountFilter specifies filters for listing accounts.
type AccountFilter struct {
	UserID uuid.UUID
	// AllUsers ignores UserID and orders by id, for background scans.
	AllUsers bool
	Limit    int
	Offset   int
}

// IAccountTable defines the interface for account storage operations.
// FindByID returns nil without an error when no row matches. List returns up
// to Limit+1 rows so callers can tell whether another page exists.
type IAccountTable interface {
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*Account, error)
	Insert(ctx context.Context, create *AccountCreate) (*Account, error)
	List(ctx context.Context, filter *AccountFilter) ([]*Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	Delete(ctx context.Context, id uuid.UUID) error
}
