package escrow

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/app"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/iov-one/timelock/timelocktest"
	"github.com/iov-one/timelock/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

type serviceFixture struct {
	tx       *app.CommitStore
	tokens   token.Controller
	transfer *TokenTransferer
	clock    *timelocktest.Clock
	creator  timelock.Address
}

func newServiceFixture(t testing.TB, db timelock.CacheableKVStore) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		tx:      app.NewCommitStore(db),
		tokens:  token.NewController(),
		clock:   timelocktest.NewClock(time.Date(2019, 6, 1, 12, 0, 0, 0, time.UTC)),
		creator: timelocktest.RandomAddr(t),
	}
	f.transfer = NewTokenTransferer(f.tokens)
	err := f.tx.Update(func(db timelock.KVStore) error {
		if err := f.tokens.SetInfo(db, "TLK", "Timelock", 6); err != nil {
			return err
		}
		return f.tokens.Mint(db, f.creator, 1000000)
	})
	require.NoError(t, err)
	return f
}

func (f *serviceFixture) service(transfer Transferer) *Service {
	return NewService(f.tx, transfer, WithClock(f.clock.Now))
}

func (f *serviceFixture) after(d time.Duration) timelock.UnixTime {
	return timelock.AsUnixTime(f.clock.Now().Add(d))
}

func (f *serviceFixture) balance(t testing.TB, a timelock.Address) uint64 {
	t.Helper()
	var b uint64
	err := f.tx.View(func(db timelock.ReadOnlyKVStore) error {
		var err error
		b, err = f.tokens.Balance(db, a)
		return err
	})
	require.NoError(t, err)
	return b
}

func TestServiceScenarios(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 1000000))

	b1 := timelocktest.RandomAddr(t)
	b2 := timelocktest.RandomAddr(t)

	// Two deposits for the same beneficiary.
	id, err := s.Lock(ctx, f.creator, b1, 5000, f.after(time.Hour))
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
	id, err = s.Lock(ctx, f.creator, b1, 2500, f.after(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, uint64(2), id)

	require.Equal(t, uint64(7500), f.balance(t, CustodyAddress()))
	ids, err := s.GetDepositIDsForBeneficiary(ctx, b1)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, ids)

	// Nothing can be withdrawn before the lock time.
	err = s.Withdrawal(ctx, b1, 1, b1)
	require.True(t, errors.ErrStillLocked.Is(err), "unexpected error: %+v", err)
	f.clock.Advance(time.Hour - time.Second)
	err = s.Withdrawal(ctx, b1, 1, b1)
	require.True(t, errors.ErrStillLocked.Is(err), "unexpected error: %+v", err)

	// Passing the lock time releases exactly the first deposit.
	f.clock.Advance(2 * time.Second)
	keeper := timelocktest.RandomAddr(t)
	require.NoError(t, s.Withdrawal(ctx, keeper, 1, b1))
	require.Equal(t, uint64(5000), f.balance(t, b1))
	require.Equal(t, uint64(2500), f.balance(t, CustodyAddress()))

	err = s.Withdrawal(ctx, keeper, 1, b1)
	require.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)
	require.Equal(t, uint64(5000), f.balance(t, b1))

	_, err = s.GetDeposit(ctx, 1, b1)
	require.True(t, errors.ErrNotFound.Is(err), "unexpected error: %+v", err)
	d, err := s.GetDeposit(ctx, 2, b1)
	require.NoError(t, err)
	require.Equal(t, uint64(2500), d.Amount)
	require.Equal(t, f.creator, d.Creator)

	// Interleaved beneficiaries share one id sequence.
	for _, b := range []timelock.Address{b2, b1, b2} {
		_, err := s.Lock(ctx, f.creator, b, 100, f.after(time.Minute))
		require.NoError(t, err)
	}
	ids, err = s.GetDepositIDsForBeneficiary(ctx, b1)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 4}, ids)
	ids, err = s.GetDepositIDsForBeneficiary(ctx, b2)
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 5}, ids)

	// A beneficiary with a withdrawn deposit can receive a new one.
	id, err = s.Lock(ctx, f.creator, b1, 5000, f.after(time.Hour))
	require.NoError(t, err)
	require.Equal(t, uint64(6), id)
	d, err = s.GetDeposit(ctx, id, b1)
	require.NoError(t, err)
	require.True(t, d.IsActive())

	report, err := s.Audit(ctx)
	require.NoError(t, err)
	require.Equal(t, &AuditReport{
		Deposits: 6,
		Active:   5,
		Locked:   2500 + 300 + 5000,
		Custody:  2500 + 300 + 5000,
		Events:   7,
	}, report)
}

func TestServiceInterleavedCreation(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 1000))

	b1 := timelocktest.RandomAddr(t)
	b2 := timelocktest.RandomAddr(t)
	for _, b := range []timelock.Address{b1, b2, b1, b2} {
		_, err := s.Lock(ctx, f.creator, b, 10, 0)
		require.NoError(t, err)
	}

	ids, err := s.GetDepositIDsForBeneficiary(ctx, b1)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 3}, ids)
	ids, err = s.GetDepositIDsForBeneficiary(ctx, b2)
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 4}, ids)

	ids, err = s.GetDepositIDsForBeneficiary(ctx, timelocktest.RandomAddr(t))
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestServiceRejectedLockHasNoEffect(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 100))
	alice := timelocktest.RandomAddr(t)

	_, err := s.Lock(ctx, f.creator, timelocktest.ZeroAddr(), 10, 0)
	require.True(t, errors.ErrInvalidBeneficiary.Is(err), "unexpected error: %+v", err)
	_, err = s.Lock(ctx, f.creator, alice, 0, 0)
	require.True(t, errors.ErrInvalidAmount.Is(err), "unexpected error: %+v", err)
	_, err = s.Lock(ctx, f.creator, alice, 101, 0)
	require.True(t, errors.ErrTransferFailed.Is(err), "unexpected error: %+v", err)

	require.Equal(t, uint64(0), f.balance(t, CustodyAddress()))
	events, err := s.Events(ctx, 0, 0)
	require.NoError(t, err)
	require.Empty(t, events)

	// The next successful lock still receives the first id.
	id, err := s.Lock(ctx, f.creator, alice, 100, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
}

func TestServicePushFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())

	fail := true
	hook := &hookTransferer{
		Transferer: f.transfer,
		onPush: func(timelock.KVStore) error {
			if fail {
				return errors.Wrap(errors.ErrInsufficientAmount, "custody unavailable")
			}
			return nil
		},
	}
	s := f.service(hook)
	require.NoError(t, f.tx.Update(func(db timelock.KVStore) error {
		return f.transfer.Approve(db, f.creator, 5000)
	}))
	alice := timelocktest.RandomAddr(t)

	id, err := s.Lock(ctx, f.creator, alice, 5000, 0)
	require.NoError(t, err)

	err = s.Withdrawal(ctx, alice, id, alice)
	require.True(t, errors.ErrTransferFailed.Is(err), "unexpected error: %+v", err)

	// The tombstone was rolled back together with the failed push.
	d, err := s.GetDeposit(ctx, id, alice)
	require.NoError(t, err)
	require.True(t, d.IsActive())
	require.Equal(t, uint64(0), f.balance(t, alice))
	require.Equal(t, uint64(5000), f.balance(t, CustodyAddress()))
	events, err := s.Events(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)

	fail = false
	require.NoError(t, s.Withdrawal(ctx, alice, id, alice))
	require.Equal(t, uint64(5000), f.balance(t, alice))
}

func TestServiceReentrantWithdrawal(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	hook := &hookTransferer{Transferer: f.transfer}
	s := f.service(hook)
	require.NoError(t, f.tx.Update(func(db timelock.KVStore) error {
		return f.transfer.Approve(db, f.creator, 10000)
	}))
	alice := timelocktest.RandomAddr(t)

	first, err := s.Lock(ctx, f.creator, alice, 5000, 0)
	require.NoError(t, err)
	_, err = s.Lock(ctx, f.creator, alice, 5000, 0)
	require.NoError(t, err)

	// The recipient of the push tries to withdraw the same deposit again
	// from within the transaction that pays it.
	var reentry error
	hook.onPush = func(db timelock.KVStore) error {
		hook.onPush = nil
		_, reentry = s.ctrl.Withdraw(timelocktest.Context(f.clock.Now()), db, alice, first, alice)
		return nil
	}
	require.NoError(t, s.Withdrawal(ctx, alice, first, alice))
	require.True(t, errors.ErrNotFound.Is(reentry), "unexpected error: %+v", reentry)

	require.Equal(t, uint64(5000), f.balance(t, alice))
	require.Equal(t, uint64(5000), f.balance(t, CustodyAddress()))
}

func TestServiceConcurrentLocks(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 1000000))

	const workers = 50
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids []uint64
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := timelocktest.RandomAddr(t)
			id, err := s.Lock(ctx, f.creator, b, 10, 0)
			if err != nil {
				t.Errorf("lock: %+v", err)
				return
			}
			mu.Lock()
			ids = append(ids, id)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	require.Len(t, ids, workers)
	for i, id := range ids {
		require.Equal(t, uint64(i+1), id)
	}
	require.Equal(t, uint64(workers*10), f.balance(t, CustodyAddress()))
}

func TestServiceConcurrentWithdrawals(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 1000000))
	alice := timelocktest.RandomAddr(t)

	id, err := s.Lock(ctx, f.creator, alice, 5000, 0)
	require.NoError(t, err)
	// Keep more funds in the custody than the deposit is worth.
	_, err = s.Lock(ctx, f.creator, timelocktest.RandomAddr(t), 5000, 0)
	require.NoError(t, err)

	const workers = 20
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Withdrawal(ctx, timelocktest.RandomAddr(t), id, alice)
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.ErrNotFound.Is(err):
		default:
			t.Fatalf("unexpected error: %+v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, uint64(5000), f.balance(t, alice))
	assert.Equal(t, uint64(5000), f.balance(t, CustodyAddress()))
}

func TestServiceEvents(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 1000))
	alice := timelocktest.RandomAddr(t)
	keeper := timelocktest.RandomAddr(t)

	until := f.after(time.Minute)
	id, err := s.Lock(ctx, f.creator, alice, 300, until)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	require.NoError(t, s.Withdrawal(ctx, keeper, id, alice))

	events, err := s.Events(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, uint64(1), events[0].Number)
	assert.Equal(t, &Lockup{
		DepositId:   id,
		Creator:     f.creator,
		Beneficiary: alice,
		Amount:      300,
		LockedUntil: until,
	}, events[0].Lockup)

	assert.Equal(t, uint64(2), events[1].Number)
	assert.Equal(t, until, events[1].Time)
	assert.Equal(t, &Withdrawal{
		DepositId:   id,
		Beneficiary: alice,
		Caller:      keeper,
		Amount:      300,
	}, events[1].Withdrawal)

	events, err = s.Events(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, uint64(2), events[0].Number)
}

func TestServiceContextTimeWins(t *testing.T) {
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	ctx := context.Background()
	require.NoError(t, s.Approve(ctx, f.creator, 1000))
	alice := timelocktest.RandomAddr(t)

	id, err := s.Lock(ctx, f.creator, alice, 10, f.after(time.Hour))
	require.NoError(t, err)

	// A block time in the context is used instead of the clock.
	future := timelocktest.Context(f.clock.Now().Add(time.Hour))
	require.NoError(t, s.Withdrawal(future, alice, id, alice))
}

func TestServiceApproveUnsupported(t *testing.T) {
	f := newServiceFixture(t, store.MemStore())
	s := f.service(&hookTransferer{Transferer: f.transfer})
	err := s.Approve(context.Background(), f.creator, 10)
	assert.True(t, errors.ErrHuman.Is(err), "unexpected error: %+v", err)
}

func TestServiceLogging(t *testing.T) {
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)

	var buf bytes.Buffer
	ctx := timelock.WithLogger(context.Background(), log.NewTMLogger(log.NewSyncWriter(&buf)))
	require.NoError(t, s.Approve(ctx, f.creator, 1000))
	alice := timelocktest.RandomAddr(t)

	_, err := s.Lock(ctx, f.creator, alice, 10, 0)
	require.NoError(t, err)
	_, err = s.Lock(ctx, f.creator, alice, 0, 0)
	require.Error(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "deposit locked"), out)
	assert.True(t, strings.Contains(out, "lock rejected"), out)
}

func TestServiceOnPersistentStore(t *testing.T) {
	db, cleanup := timelocktest.CommitKVStore(t)
	defer cleanup()

	ctx := context.Background()
	f := newServiceFixture(t, db)
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 10000))
	alice := timelocktest.RandomAddr(t)

	id, err := s.Lock(ctx, f.creator, alice, 5000, f.after(time.Hour))
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	f.clock.Advance(time.Hour)
	require.NoError(t, s.Withdrawal(ctx, alice, id, alice))
	require.Equal(t, uint64(5000), f.balance(t, alice))

	// Every transaction is committed as a new version.
	require.Equal(t, int64(4), f.tx.CommitInfo().Version)
}

func TestServiceCustodyCannotLockItsOwnFunds(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t, store.MemStore())
	s := f.service(f.transfer)
	require.NoError(t, s.Approve(ctx, f.creator, 5000))
	victim := timelocktest.RandomAddr(t)
	thief := timelocktest.RandomAddr(t)

	_, err := s.Lock(ctx, f.creator, victim, 5000, f.after(time.Hour))
	require.NoError(t, err)

	err = s.Approve(ctx, CustodyAddress(), 5000)
	require.True(t, errors.ErrUnauthorized.Is(err), "unexpected error: %+v", err)
	_, err = s.Lock(ctx, CustodyAddress(), thief, 5000, 0)
	require.True(t, errors.ErrTransferFailed.Is(err), "unexpected error: %+v", err)

	report, err := s.Audit(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(5000), report.Locked)
	require.Equal(t, uint64(5000), report.Custody)

	f.clock.Advance(time.Hour)
	require.NoError(t, s.Withdrawal(ctx, victim, 1, victim))
	require.Equal(t, uint64(5000), f.balance(t, victim))
	require.Equal(t, uint64(0), f.balance(t, thief))
}
