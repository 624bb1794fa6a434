package category

import (
	"context"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/rowlock"
)

// TableName is the categories table.
const TableName = "categories"

// Category classifies transactions. Type is either income or expense.
type Category struct {
	ID        uuid.UUID              `db:"id"`
	UserID    uuid.UUID              `db:"user_id"`
	Name      string                 `db:"name"`
	Type      ledger.TransactionType `db:"type"`
	CreatedAt time.Time              `db:"created_at"`
}

// CategoryCreate is the input for creating a category.
type CategoryCreate struct {
	UserID uuid.UUID
	Name   string
	Type   ledger.TransactionType
}

// CategoryUpdate carries the fields that may be edited. Unset fields are
// left untouched.
type CategoryUpdate struct {
	Name omit.Val[string]
	Type omit.Val[ledger.TransactionType]
}

// ICategoryTable defines the interface for category storage operations.
type ICategoryTable interface {
	FindByID(ctx context.Context, id uuid.UUID, lock rowlock.Mode) (*Category, error)
	Insert(ctx context.Context, create *CategoryCreate) (*Category, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, id uuid.UUID, update *CategoryUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
