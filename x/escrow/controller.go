package escrow

import (
	"context"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// Controller implements the deposit state machine. It operates on the store
// of a single transaction and leaves consistency of failed calls to the
// caller: a failed call may leave partial writes that must be discarded.
//
// The current time is taken from the context, see timelock.WithBlockTime.
type Controller struct {
	registry *Registry
	index    *BeneficiaryIndex
	events   *EventLog
	transfer Transferer
}

// NewController returns a controller moving funds with given transferer.
func NewController(transfer Transferer) *Controller {
	return &Controller{
		registry: NewRegistry(),
		index:    NewBeneficiaryIndex(),
		events:   NewEventLog(),
		transfer: transfer,
	}
}

// Lock pulls amount from the creator into the custody and records a new
// deposit for the beneficiary. It returns the id of the deposit.
func (c *Controller) Lock(
	ctx context.Context,
	db timelock.KVStore,
	creator, beneficiary timelock.Address,
	amount uint64,
	lockedUntil timelock.UnixTime,
) (uint64, error) {
	if err := validateBeneficiary(beneficiary); err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, errors.Wrap(errors.ErrInvalidAmount, "zero amount")
	}
	if err := creator.Validate(); err != nil {
		return 0, errors.Wrap(err, "creator")
	}
	// Funds already held in custody belong to other deposits.
	if creator.Equals(CustodyAddress()) {
		return 0, errors.Wrap(errors.ErrTransferFailed, "custody cannot fund a deposit")
	}
	now := blockNow(ctx)

	if err := c.transfer.Pull(db, creator, amount); err != nil {
		return 0, errors.Wrapf(errors.ErrTransferFailed, "pull %d from %s: %s", amount, creator, err)
	}

	id, err := c.registry.Create(db, creator, beneficiary, amount, lockedUntil, now)
	if err != nil {
		return 0, err
	}
	if err := c.index.Append(db, beneficiary, id); err != nil {
		return 0, err
	}
	event := &Event{
		Time: now,
		Lockup: &Lockup{
			DepositId:   id,
			Creator:     creator,
			Beneficiary: beneficiary,
			Amount:      amount,
			LockedUntil: lockedUntil,
		},
	}
	if _, err := c.events.Emit(db, event); err != nil {
		return 0, err
	}
	return id, nil
}

// Withdraw pays the deposit out to its beneficiary. Anybody can trigger the
// withdrawal once the lock time has passed, the caller is only recorded.
//
// The deposit is marked as withdrawn before the funds are pushed, so any
// withdrawal of the same deposit that happens during the push, including one
// made by the receiver of the funds, fails with ErrNotFound.
func (c *Controller) Withdraw(
	ctx context.Context,
	db timelock.KVStore,
	caller timelock.Address,
	id uint64,
	beneficiary timelock.Address,
) (*Deposit, error) {
	d, err := c.registry.Get(db, id, beneficiary)
	if err != nil {
		return nil, err
	}
	if !timelock.IsExpired(ctx, d.LockedUntil) {
		return nil, errors.Wrapf(errors.ErrStillLocked, "Tokens are still locked up until %s (deposit %d)", d.LockedUntil, id)
	}

	now := blockNow(ctx)
	if err := c.registry.MarkWithdrawn(db, id, now); err != nil {
		return nil, err
	}
	if err := c.transfer.Push(db, d.Beneficiary, d.Amount); err != nil {
		return nil, errors.Wrapf(errors.ErrTransferFailed, "push %d to %s: %s", d.Amount, d.Beneficiary, err)
	}

	event := &Event{
		Time: now,
		Withdrawal: &Withdrawal{
			DepositId:   id,
			Beneficiary: d.Beneficiary,
			Caller:      caller,
			Amount:      d.Amount,
		},
	}
	if _, err := c.events.Emit(db, event); err != nil {
		return nil, err
	}
	d.Withdrawn = true
	d.WithdrawnAt = now
	return d, nil
}

// Deposit returns the active deposit of the beneficiary.
func (c *Controller) Deposit(db timelock.ReadOnlyKVStore, id uint64, beneficiary timelock.Address) (*Deposit, error) {
	return c.registry.Get(db, id, beneficiary)
}

// DepositIDs returns ids of all deposits ever created for the beneficiary.
func (c *Controller) DepositIDs(db timelock.ReadOnlyKVStore, beneficiary timelock.Address) ([]uint64, error) {
	return c.index.List(db, beneficiary)
}

// Events returns the audit trail, see EventLog.Since.
func (c *Controller) Events(db timelock.ReadOnlyKVStore, after uint64, limit int) ([]NumberedEvent, error) {
	return c.events.Since(db, after, limit)
}

// AuditReport summarizes the escrow state.
type AuditReport struct {
	// Deposits is the number of all deposits ever created.
	Deposits uint64 `json:"deposits"`
	// Active is the number of deposits not withdrawn yet.
	Active uint64 `json:"active"`
	// Locked is the sum of amounts of all active deposits.
	Locked uint64 `json:"locked"`
	// Custody is the amount held by the custody address.
	Custody uint64 `json:"custody"`
	// Events is the length of the audit trail.
	Events uint64 `json:"events"`
}

// Audit checks that the custody holds at least the amount of all active
// deposits. ErrState is returned together with the report if it does not.
func (c *Controller) Audit(db timelock.ReadOnlyKVStore) (*AuditReport, error) {
	var r AuditReport
	err := c.registry.Iterate(db, func(id uint64, d *Deposit) error {
		r.Deposits++
		if d.IsActive() {
			r.Active++
			r.Locked += d.Amount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if r.Custody, err = c.transfer.Custody(db); err != nil {
		return nil, errors.Wrap(err, "custody")
	}
	if r.Events, err = c.events.Len(db); err != nil {
		return nil, err
	}
	last, err := c.registry.LastID(db)
	if err != nil {
		return nil, err
	}
	if last != r.Deposits {
		return &r, errors.Wrapf(errors.ErrState, "%d deposits stored, last id is %d", r.Deposits, last)
	}
	if r.Locked > r.Custody {
		return &r, errors.Wrapf(errors.ErrState, "locked %d exceeds custody %d", r.Locked, r.Custody)
	}
	return &r, nil
}

// blockNow returns the current time from the context. The time must be set,
// running without it is a setup error.
func blockNow(ctx context.Context) timelock.UnixTime {
	now, ok := timelock.BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return timelock.AsUnixTime(now)
}
