// Package rowlock names the row locks a select may take inside a write
// transaction. Rows are always locked in the order category or budget,
// account, transaction, goal.
package rowlock

import (
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type Mode int

const (
	// None reads the row without locking it.
	None Mode = iota
	// KeyShare keeps the row from being deleted while it is being referenced.
	KeyShare
	// Update locks the row exclusively.
	Update
)

// Mods returns the locking clause for mode, if any.
func Mods(mode Mode) []bob.Mod[*dialect.SelectQuery] {
	switch mode {
	case KeyShare:
		return []bob.Mod[*dialect.SelectQuery]{sm.ForKeyShare()}
	case Update:
		return []bob.Mod[*dialect.SelectQuery]{sm.ForUpdate()}
	default:
		return nil
	}
}
