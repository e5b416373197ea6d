package escrow

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// BeneficiaryIndex maps a beneficiary to the ids of all deposits created for
// it, in creation order. The index is append only: withdrawn deposits stay
// listed.
type BeneficiaryIndex struct {
	bucket orm.ModelBucket
}

// NewBeneficiaryIndex returns an index stored in its own bucket.
func NewBeneficiaryIndex() *BeneficiaryIndex {
	return &BeneficiaryIndex{
		bucket: orm.NewModelBucket("benefidx", &BeneficiaryDeposits{}),
	}
}

// Append adds the id at the end of the beneficiary list, creating the list if
// needed. Ids must be appended in increasing order.
func (x *BeneficiaryIndex) Append(db timelock.KVStore, beneficiary timelock.Address, id uint64) error {
	if err := validateBeneficiary(beneficiary); err != nil {
		return err
	}
	list, err := x.load(db, beneficiary)
	if err != nil {
		return err
	}
	if n := len(list.DepositIds); n > 0 && list.DepositIds[n-1] >= id {
		return errors.Wrapf(errors.ErrHuman, "deposit %d appended after %d", id, list.DepositIds[n-1])
	}
	list.DepositIds = append(list.DepositIds, id)
	return x.bucket.Put(db, beneficiary, list)
}

// List returns all deposit ids of the beneficiary in creation order. A
// beneficiary without deposits has an empty list.
func (x *BeneficiaryIndex) List(db timelock.ReadOnlyKVStore, beneficiary timelock.Address) ([]uint64, error) {
	list, err := x.load(db, beneficiary)
	if err != nil {
		return nil, err
	}
	if list.DepositIds == nil {
		return []uint64{}, nil
	}
	return list.DepositIds, nil
}

func (x *BeneficiaryIndex) load(db timelock.ReadOnlyKVStore, beneficiary timelock.Address) (*BeneficiaryDeposits, error) {
	var list BeneficiaryDeposits
	switch err := x.bucket.One(db, beneficiary, &list); {
	case err == nil:
		return &list, nil
	case errors.ErrNotFound.Is(err):
		return &BeneficiaryDeposits{}, nil
	default:
		return nil, errors.Wrap(err, "beneficiary index")
	}
}
