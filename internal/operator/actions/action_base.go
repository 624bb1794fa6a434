package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// IAction is one unit of work run by the operator inside a single write
// transaction. Returning an error rolls back everything the action wrote.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
