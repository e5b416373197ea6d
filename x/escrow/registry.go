package escrow

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// Registry is the durable store of deposits, keyed by their id.
type Registry struct {
	bucket orm.ModelBucket
	ids    orm.Sequence
}

// NewRegistry returns a registry that uses the deposit bucket and the global
// deposit id sequence.
func NewRegistry() *Registry {
	b := orm.NewModelBucket("deposit", &Deposit{})
	return &Registry{
		bucket: b,
		ids:    b.Sequence("id"),
	}
}

// Create stores a new, active deposit and returns its id. Ids are assigned
// from a single sequence shared by all beneficiaries: 1, 2, 3 and so on.
// Nothing is written when the input is invalid.
func (r *Registry) Create(
	db timelock.KVStore,
	creator, beneficiary timelock.Address,
	amount uint64,
	lockedUntil, now timelock.UnixTime,
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

	next, err := r.ids.NextInt(db)
	if err != nil {
		return 0, errors.Wrap(err, "deposit id")
	}
	id := uint64(next)
	d := &Deposit{
		Creator:     creator,
		Beneficiary: beneficiary,
		Amount:      amount,
		LockedUntil: lockedUntil,
		CreatedAt:   now,
	}
	if err := r.bucket.Put(db, depositKey(id), d); err != nil {
		return 0, errors.Wrap(err, "cannot store deposit")
	}
	return id, nil
}

const msgNothingLocked = "There are no tokens locked up for this address"

// Get returns the active deposit with given id that belongs to given
// beneficiary. Unknown ids, deposits of other beneficiaries and withdrawn
// deposits are all reported as ErrNotFound.
func (r *Registry) Get(db timelock.ReadOnlyKVStore, id uint64, beneficiary timelock.Address) (*Deposit, error) {
	d, err := r.Deposit(db, id)
	if err != nil {
		return nil, errors.Wrap(err, msgNothingLocked)
	}
	if !d.Beneficiary.Equals(beneficiary) || d.Withdrawn {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s (deposit %d)", msgNothingLocked, id)
	}
	return d, nil
}

// Deposit returns the deposit with given id regardless of its state.
func (r *Registry) Deposit(db timelock.ReadOnlyKVStore, id uint64) (*Deposit, error) {
	var d Deposit
	if err := r.bucket.One(db, depositKey(id), &d); err != nil {
		return nil, errors.Wrapf(err, "deposit %d", id)
	}
	return &d, nil
}

// MarkWithdrawn moves an active deposit into the withdrawn state. This must
// happen before any funds leave the custody.
func (r *Registry) MarkWithdrawn(db timelock.KVStore, id uint64, now timelock.UnixTime) error {
	d, err := r.Deposit(db, id)
	if err != nil {
		return err
	}
	if d.Withdrawn {
		return errors.Wrapf(errors.ErrNotFound, "deposit %d withdrawn", id)
	}
	d.Withdrawn = true
	d.WithdrawnAt = now
	return r.bucket.Put(db, depositKey(id), d)
}

// LastID returns the most recently assigned deposit id, 0 if none.
func (r *Registry) LastID(db timelock.ReadOnlyKVStore) (uint64, error) {
	n, err := r.ids.Latest(db)
	return uint64(n), err
}

// Iterate calls fn for every deposit in id order. Returning
// errors.ErrIteratorDone from fn stops the iteration.
func (r *Registry) Iterate(db timelock.ReadOnlyKVStore, fn func(id uint64, d *Deposit) error) error {
	return r.bucket.Iterate(db, nil, nil, func(key []byte, m orm.Model) error {
		id, err := orm.DecodeSequence(key)
		if err != nil {
			return err
		}
		return fn(uint64(id), m.(*Deposit))
	})
}
