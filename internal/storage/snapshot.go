package storage

import (
	"context"
)

// Snapshot gives read access to tables that all see the same committed
// state, so values read by separate queries agree with each other. Release
// must be called once the reads are done.
type Snapshot struct {
	Tables
	release func(ctx context.Context) error
}

// NewSnapshot wraps tables bound to a consistent read. release may be nil.
func NewSnapshot(tables Tables, release func(ctx context.Context) error) *Snapshot {
	return &Snapshot{Tables: tables, release: release}
}

func (s *Snapshot) Release(ctx context.Context) error {
	if s.release == nil {
		return nil
	}
	return s.release(ctx)
}
