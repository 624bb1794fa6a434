package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

// TxBeginner opens write transactions and consistent read snapshots.
type TxBeginner interface {
	BeginWrite(ctx context.Context) (*Writer, error)
	BeginSnapshot(ctx context.Context) (*Snapshot, error)
}

type Storage struct {
	DB     *sql.DB
	Reader *Reader

	beginner TxBeginner
	closer   func() error
}

// New assembles a Storage from a reader and a transaction source. closer may be nil.
func New(reader *Reader, beginner TxBeginner, closer func() error) *Storage {
	return &Storage{
		Reader:   reader,
		beginner: beginner,
		closer:   closer,
	}
}

// NewStorage connects to postgres using the environment configuration.
func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("pgx", env.PostgresURL())
	if err != nil {
		return nil, fmt.Errorf("storage: open postgres: %w", err)
	}
	return NewPostgresStorage(db), nil
}

// NewPostgresStorage wraps an open postgres handle.
func NewPostgresStorage(db *sql.DB) *Storage {
	bobDB := bob.NewDB(db)
	s := New(NewReader(NewTables(bobDB)), postgresBeginner{db: bobDB}, db.Close)
	s.DB = db
	return s
}

// Write opens a write transaction. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.beginner.BeginWrite(ctx)
}

// Snapshot opens a consistent read. The caller must Release it.
func (s *Storage) Snapshot(ctx context.Context) (*Snapshot, error) {
	return s.beginner.BeginSnapshot(ctx)
}

// Ping checks that the backing store is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

type postgresBeginner struct {
	db bob.DB
}

func (p postgresBeginner) BeginWrite(ctx context.Context) (*Writer, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: begin: %w", err)
	}
	return NewWriter(&tx, NewTables(&tx)), nil
}

// BeginSnapshot opens a read-only repeatable read transaction: every query
// in it sees the data as of its first statement.
func (p postgresBeginner) BeginSnapshot(ctx context.Context) (*Snapshot, error) {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("storage: begin snapshot: %w", err)
	}
	return NewSnapshot(NewTables(&tx), tx.Rollback), nil
}
