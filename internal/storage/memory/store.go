// Package memory is a process-local backend implementing the storage table
// interfaces. Write transactions work on a private copy of the data and are
// serialized; Commit publishes the copy, Rollback drops it.
package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/account"
	"github.com/carson-networks/ledger-server/internal/storage/budget"
	"github.com/carson-networks/ledger-server/internal/storage/category"
	"github.com/carson-networks/ledger-server/internal/storage/goal"
	"github.com/carson-networks/ledger-server/internal/storage/transaction"
)

var errTxDone = errors.New("memory: transaction already committed or rolled back")

type dataset struct {
	accounts     map[uuid.UUID]account.Account
	goals        map[uuid.UUID]goal.Goal
	transactions map[uuid.UUID]transaction.Transaction
	categories   map[uuid.UUID]category.Category
	budgets      map[uuid.UUID]budget.Budget
}

func newDataset() *dataset {
	return &dataset{
		accounts:     map[uuid.UUID]account.Account{},
		goals:        map[uuid.UUID]goal.Goal{},
		transactions: map[uuid.UUID]transaction.Transaction{},
		categories:   map[uuid.UUID]category.Category{},
		budgets:      map[uuid.UUID]budget.Budget{},
	}
}

func (d *dataset) clone() *dataset {
	c := newDataset()
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.goals {
		c.goals[k] = v
	}
	for k, v := range d.transactions {
		c.transactions[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.budgets {
		c.budgets[k] = v
	}
	return c
}

// Store holds the committed dataset.
type Store struct {
	writeSlot chan struct{}

	mu       sync.Mutex
	data     *dataset
	lastTime time.Time
}

var _ storage.TxBeginner = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		writeSlot: make(chan struct{}, 1),
		data:      newDataset(),
	}
}

// NewStorage returns a Storage backed by a fresh in-memory Store.
func NewStorage() *storage.Storage {
	return NewStore().Storage()
}

func (s *Store) Storage() *storage.Storage {
	return storage.New(storage.NewReader(tables(committedView{s: s})), s, nil)
}

// BeginWrite waits for the single write slot, then snapshots the committed data.
func (s *Store) BeginWrite(ctx context.Context) (*storage.Writer, error) {
	select {
	case s.writeSlot <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s.mu.Lock()
	working := s.data.clone()
	s.mu.Unlock()

	tx := &memTx{store: s, working: working}
	return storage.NewWriter(tx, tables(txView{tx: tx})), nil
}

// BeginSnapshot pins the committed dataset. Commits publish a new dataset
// rather than changing the pinned one, so the snapshot never moves.
func (s *Store) BeginSnapshot(_ context.Context) (*storage.Snapshot, error) {
	s.mu.Lock()
	data := s.data
	s.mu.Unlock()
	return storage.NewSnapshot(tables(snapshotView{s: s, data: data}), nil), nil
}

// now returns strictly increasing microsecond timestamps so ordering by
// creation time is deterministic.
func (s *Store) now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := time.Now().UTC().Truncate(time.Microsecond)
	if !t.After(s.lastTime) {
		t = s.lastTime.Add(time.Microsecond)
	}
	s.lastTime = t
	return t
}

func newID() uuid.UUID {
	return uuid.Must(uuid.NewV4())
}

type memTx struct {
	store   *Store
	working *dataset
	done    bool
}

func (t *memTx) Commit(_ context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.store.mu.Lock()
	t.store.data = t.working
	t.store.mu.Unlock()
	<-t.store.writeSlot
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.working = nil
	<-t.store.writeSlot
	return nil
}

// view runs fn against either the committed data or a transaction's copy.
type view interface {
	run(fn func(d *dataset) error) error
	now() time.Time
}

type committedView struct {
	s *Store
}

func (v committedView) run(fn func(d *dataset) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.data)
}

func (v committedView) now() time.Time {
	return v.s.now()
}

type snapshotView struct {
	s    *Store
	data *dataset
}

func (v snapshotView) run(fn func(d *dataset) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.data)
}

func (v snapshotView) now() time.Time {
	return v.s.now()
}

type txView struct {
	tx *memTx
}

func (v txView) run(fn func(d *dataset) error) error {
	if v.tx.done {
		return errTxDone
	}
	return fn(v.tx.working)
}

func (v txView) now() time.Time {
	return v.tx.store.now()
}

func tables(v view) storage.Tables {
	return storage.Tables{
		Accounts:     &accountTable{v: v},
		Goals:        &goalTable{v: v},
		Transactions: &transactionTable{v: v},
		Categories:   &categoryTable{v: v},
		Budgets:      &budgetTable{v: v},
	}
}

// page applies offset and the limit+1 probe used by the postgres tables.
func page[T any](rows []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(rows) {
			return rows[:0]
		}
		rows = rows[offset:]
	}
	if limit > 0 && len(rows) > limit+1 {
		rows = rows[:limit+1]
	}
	return rows
}

func today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
