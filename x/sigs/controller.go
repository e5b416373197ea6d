package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
	"golang.org/x/crypto/ed25519"
)

// SignCodeV1 is the current way to prefix the bytes we use to build
// a signature
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// Address returns the address controlled by given public key.
func Address(pub ed25519.PublicKey) timelock.Address {
	return timelock.NewCondition("sigs", "ed25519", pub).Address()
}

// Signature authorizes a single request on behalf of the owner of the
// public key.
type Signature struct {
	Pubkey    ed25519.PublicKey
	Signature []byte
	Sequence  int64
}

// Validate ensures the signature is well formed. It does not verify it.
func (s *Signature) Validate() error {
	if len(s.Pubkey) != ed25519.PublicKeySize {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Signature) != ed25519.SignatureSize {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return nil
}

// Controller keeps track of the signer sequences.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller storing signers in the default bucket.
func NewController() Controller {
	return Controller{bucket: newUserBucket()}
}

// Sequence returns the sequence the next signature of given address must be
// created with. Unknown signers start at zero.
func (c Controller) Sequence(db timelock.ReadOnlyKVStore, addr timelock.Address) (int64, error) {
	var u UserData
	switch err := c.bucket.One(db, addr, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// VerifySignature checks the signature against signBytes and the chain and
// increments the sequence of the signer. It returns the signer address.
func (c Controller) VerifySignature(
	db timelock.KVStore,
	sig *Signature,
	signBytes []byte,
	chainID string,
) (timelock.Address, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !ed25519.Verify(sig.Pubkey, toSign, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	addr := Address(sig.Pubkey)
	current, err := c.Sequence(db, addr)
	if err != nil {
		return nil, err
	}
	if sig.Sequence != current {
		return nil, errors.Wrapf(ErrInvalidSequence, "got %d, expected %d", sig.Sequence, current)
	}
	u := &UserData{Pubkey: sig.Pubkey, Sequence: current + 1}
	if err := c.bucket.Put(db, addr, u); err != nil {
		return nil, err
	}
	return addr, nil
}

// Sign creates a signature of signBytes for given chain and sequence.
func Sign(key ed25519.PrivateKey, signBytes []byte, chainID string, seq int64) (*Signature, error) {
	toSign, err := BuildSignBytes(signBytes, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &Signature{
		Pubkey:    key.Public().(ed25519.PublicKey),
		Signature: ed25519.Sign(key, toSign),
		Sequence:  seq,
	}, nil
}

/*
BuildSignBytes combines all information the signature is bound to.

We use the following format:

version | len(chainID) | chainID      | sequence          | signBytes
4bytes  | uint8        | ascii string | int64 (bigendian) | request body

This is then prehashed with sha512 before fed into the ed25519 signing and
verification step.
*/
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(chainID) == 0 || len(chainID) > 255 {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	output := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(signBytes))
	output = append(output, SignCodeV1...)
	output = append(output, uint8(len(chainID)))
	output = append(output, []byte(chainID)...)
	output = append(output, nonce...)
	output = append(output, signBytes...)

	hashed := sha512.Sum512(output)
	return hashed[:], nil
}
