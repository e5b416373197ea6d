package escrow

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

var _ orm.Model = (*Deposit)(nil)

// Validate ensures the deposit is valid
func (d *Deposit) Validate() error {
	if err := validateBeneficiary(d.Beneficiary); err != nil {
		return err
	}
	if err := d.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if d.Amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero amount")
	}
	if !d.Withdrawn && !d.WithdrawnAt.IsZero() {
		return errors.Wrap(errors.ErrState, "withdrawal time of an active deposit")
	}
	return nil
}

// IsActive returns true if the deposit was not withdrawn yet.
func (d *Deposit) IsActive() bool {
	return !d.Withdrawn
}

// validateBeneficiary rejects missing, malformed and zero addresses.
func validateBeneficiary(a timelock.Address) error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrInvalidBeneficiary, "missing")
	}
	if err := a.Validate(); err != nil {
		return errors.Wrap(errors.ErrInvalidBeneficiary, err.Error())
	}
	if a.IsZero() {
		return errors.Wrap(errors.ErrInvalidBeneficiary, "You cannot lock up tokens for the zero address")
	}
	if a.Equals(CustodyAddress()) {
		return errors.Wrap(errors.ErrInvalidBeneficiary, "You cannot lock up tokens for the escrow custody")
	}
	return nil
}

var _ orm.Model = (*BeneficiaryDeposits)(nil)

// Validate ensures the ids are strictly increasing.
func (b *BeneficiaryDeposits) Validate() error {
	var last uint64
	for i, id := range b.DepositIds {
		if id <= last {
			return errors.Wrapf(errors.ErrState, "id %d at position %d is not increasing", id, i)
		}
		last = id
	}
	return nil
}

var _ orm.Model = (*Event)(nil)

// Validate ensures exactly one kind of event is set.
func (e *Event) Validate() error {
	switch {
	case e.Lockup != nil && e.Withdrawal != nil:
		return errors.Wrap(errors.ErrState, "event of two kinds")
	case e.Lockup != nil:
		if e.Lockup.DepositId == 0 {
			return errors.Wrap(errors.ErrEmpty, "deposit id")
		}
	case e.Withdrawal != nil:
		if e.Withdrawal.DepositId == 0 {
			return errors.Wrap(errors.ErrEmpty, "deposit id")
		}
	default:
		return errors.Wrap(errors.ErrEmpty, "event kind")
	}
	return e.Time.Validate()
}

// depositKey returns the store key of a deposit. Big endian keeps keys
// sorted in id order.
func depositKey(id uint64) []byte {
	return orm.EncodeSequence(int64(id))
}
