package sigs

import (
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
	"golang.org/x/crypto/ed25519"
)

// BucketName is where the signer state is stored.
const BucketName = "sigs"

var _ orm.Model = (*UserData)(nil)

// Validate ensures the user data is valid
func (u *UserData) Validate() error {
	if len(u.Pubkey) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", len(u.Pubkey))
	}
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

func newUserBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}
