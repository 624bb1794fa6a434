package storage

import (
	"context"
)

// Tx is the transaction a Writer's tables are bound to.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer gives access to every table inside one write transaction. Nothing
// done through it is visible to readers until Commit.
type Writer struct {
	tx Tx
	Tables
}

func NewWriter(tx Tx, tables Tables) *Writer {
	return &Writer{
		tx:     tx,
		Tables: tables,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
