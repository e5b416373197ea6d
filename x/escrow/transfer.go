package escrow

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/token"
)

// Transferer moves the asset in and out of the escrow custody. All methods
// operate on the store of the current transaction, so that asset movements
// are committed or rolled back together with the escrow state.
type Transferer interface {
	// Pull moves amount from the given address into the custody. The
	// owner must have allowed the custody to spend it.
	Pull(db timelock.KVStore, from timelock.Address, amount uint64) error
	// Push moves amount from the custody to the given address. It either
	// moves the full amount or nothing.
	Push(db timelock.KVStore, to timelock.Address, amount uint64) error
	// Custody returns the amount currently held by the escrow.
	Custody(db timelock.ReadOnlyKVStore) (uint64, error)
}

// Approver is implemented by transferers that can grant the custody an
// allowance on behalf of the owner.
type Approver interface {
	Approve(db timelock.KVStore, owner timelock.Address, amount uint64) error
}

// CustodyCondition is the condition that controls the escrow funds. No key
// can sign for it, so only the escrow logic can move the funds.
func CustodyCondition() timelock.Condition {
	return timelock.NewCondition("escrow", "custody", []byte("timelock"))
}

// CustodyAddress is the address holding all locked funds.
func CustodyAddress() timelock.Address {
	return CustodyCondition().Address()
}

// TokenTransferer is the Transferer of the ledger token.
type TokenTransferer struct {
	ctrl    token.Controller
	custody timelock.Address
}

var _ Transferer = (*TokenTransferer)(nil)
var _ Approver = (*TokenTransferer)(nil)

// NewTokenTransferer returns a transferer holding the funds on the custody
// address.
func NewTokenTransferer(ctrl token.Controller) *TokenTransferer {
	return &TokenTransferer{
		ctrl:    ctrl,
		custody: CustodyAddress(),
	}
}

// Pull spends the allowance the owner granted the custody. The custody
// cannot fund a deposit from its own balance.
func (t *TokenTransferer) Pull(db timelock.KVStore, from timelock.Address, amount uint64) error {
	if from.Equals(t.custody) {
		return errors.Wrap(errors.ErrUnauthorized, "custody cannot pull from itself")
	}
	return t.ctrl.TransferFrom(db, t.custody, from, t.custody, amount)
}

// Push pays out from the custody.
func (t *TokenTransferer) Push(db timelock.KVStore, to timelock.Address, amount uint64) error {
	return t.ctrl.Transfer(db, t.custody, to, amount)
}

// Custody returns the token balance of the custody address.
func (t *TokenTransferer) Custody(db timelock.ReadOnlyKVStore) (uint64, error) {
	return t.ctrl.Balance(db, t.custody)
}

// Approve sets the amount the custody may pull from the owner.
func (t *TokenTransferer) Approve(db timelock.KVStore, owner timelock.Address, amount uint64) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if owner.Equals(t.custody) {
		return errors.Wrap(errors.ErrUnauthorized, "custody cannot grant itself an allowance")
	}
	return t.ctrl.Approve(db, owner, t.custody, amount)
}
