package operator

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func startDelegator(t *testing.T, s *storage.Storage, workers int) *OperatorDelegator {
	t.Helper()
	d := NewOperatorDelegator(s, workers, quietLogger())
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func createAccount(t *testing.T, d *OperatorDelegator, userID uuid.UUID, balance string) uuid.UUID {
	t.Helper()
	create := &actions.CreateAccount{UserID: userID, Name: "Checking", StartingBalance: decimal.RequireFromString(balance)}
	require.NoError(t, d.Process(context.Background(), create))
	return create.Account.ID
}

func balanceOf(t *testing.T, s *storage.Storage, id uuid.UUID) decimal.Decimal {
	t.Helper()
	acc, err := s.Reader.Accounts.FindByID(context.Background(), id, false)
	require.NoError(t, err)
	require.NotNil(t, acc)
	return acc.Balance
}

type failingAction struct {
	accountID uuid.UUID
}

var errBoom = errors.New("boom")

func (f *failingAction) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Accounts.UpdateBalance(ctx, f.accountID, decimal.NewFromInt(999)); err != nil {
		return err
	}
	return errBoom
}

func TestProcess_RollsBackFailedAction(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s, 2)
	accountID := createAccount(t, d, uuid.Must(uuid.NewV4()), "10.00")

	err := d.Process(context.Background(), &failingAction{accountID: accountID})
	assert.ErrorIs(t, err, errBoom)
	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(10)))
}

func TestProcess_ConcurrentDeposits(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s, 4)
	userID := uuid.Must(uuid.NewV4())
	accountID := createAccount(t, d, userID, "100.00")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := d.Process(context.Background(), &actions.Deposit{
				UserID:    userID,
				AccountID: accountID,
				Amount:    decimal.RequireFromString("1.00"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(150)))
}

func TestProcess_ConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s, 4)
	userID := uuid.Must(uuid.NewV4())
	accountID := createAccount(t, d, userID, "100.00")

	var succeeded, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := d.Process(context.Background(), &actions.Withdraw{
				UserID:    userID,
				AccountID: accountID,
				Amount:    decimal.RequireFromString("10.00"),
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, ledger.ErrInsufficientFunds):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, succeeded.Load())
	assert.EqualValues(t, 10, rejected.Load())
	assert.True(t, balanceOf(t, s, accountID).IsZero())
}

func TestProcess_CancelledContext(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Process(ctx, &actions.CreateAccount{UserID: uuid.Must(uuid.NewV4()), Name: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

// cancelDuringPerform writes, then cancels the caller's context before the
// worker gets to commit.
type cancelDuringPerform struct {
	accountID uuid.UUID
	cancel    context.CancelFunc
}

func (c *cancelDuringPerform) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Accounts.UpdateBalance(ctx, c.accountID, decimal.NewFromInt(999)); err != nil {
		return err
	}
	c.cancel()
	return nil
}

func TestProcess_CancelledDuringPerformRollsBack(t *testing.T) {
	s := memory.NewStorage()
	d := startDelegator(t, s, 1)
	accountID := createAccount(t, d, uuid.Must(uuid.NewV4()), "10.00")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := d.Process(ctx, &cancelDuringPerform{accountID: accountID, cancel: cancel})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, balanceOf(t, s, accountID).Equal(decimal.NewFromInt(10)))

	// The write slot was released by the rollback.
	createAccount(t, d, uuid.Must(uuid.NewV4()), "1.00")
}

func TestProcess_AfterStop(t *testing.T) {
	d := NewOperatorDelegator(memory.NewStorage(), 1, quietLogger())
	d.Start()
	d.Stop()
	d.Stop()

	err := d.Process(context.Background(), &actions.CreateAccount{UserID: uuid.Must(uuid.NewV4()), Name: "x"})
	assert.ErrorIs(t, err, ErrStopped)
}
