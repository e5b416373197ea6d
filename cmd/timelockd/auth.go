package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/x/sigs"
	"golang.org/x/crypto/ed25519"
)

// Actions a signed request can authorize. The action is part of the signed
// bytes, so a signature of one kind of request cannot be used for another.
const (
	actionLock    = "lock"
	actionApprove = "approve"
)

// signedRequest wraps the body of a request that moves funds of the signer.
type signedRequest struct {
	Body      json.RawMessage `json:"body"`
	Pubkey    hexBytes        `json:"pubkey"`
	Signature hexBytes        `json:"signature"`
	Sequence  int64           `json:"sequence"`
}

// signPayload returns the bytes signed for given action and body. The body
// is compacted first so that formatting does not change the signature.
func signPayload(action string, body []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(action)
	buf.WriteByte(0)
	if err := json.Compact(&buf, body); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "body: %s", err)
	}
	return buf.Bytes(), nil
}

// newSignedRequest signs body for given action.
func newSignedRequest(key ed25519.PrivateKey, action string, body []byte, chainID string, seq int64) (*signedRequest, error) {
	payload, err := signPayload(action, body)
	if err != nil {
		return nil, err
	}
	sig, err := sigs.Sign(key, payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	return &signedRequest{
		Body:      json.RawMessage(payload[len(action)+1:]),
		Pubkey:    hexBytes(sig.Pubkey),
		Signature: hexBytes(sig.Signature),
		Sequence:  sig.Sequence,
	}, nil
}

// authenticate verifies the signature of the request and consumes the
// sequence of the signer. It returns the signer address.
//
// The sequence is consumed in its own transaction, so a request that fails
// afterwards must be signed again with the next sequence.
func (l *Ledger) authenticate(action string, req *signedRequest) (timelock.Address, error) {
	if len(req.Body) == 0 {
		return nil, errors.Wrap(errors.ErrInput, "missing body")
	}
	payload, err := signPayload(action, req.Body)
	if err != nil {
		return nil, err
	}
	sig := &sigs.Signature{
		Pubkey:    ed25519.PublicKey(req.Pubkey),
		Signature: req.Signature,
		Sequence:  req.Sequence,
	}
	var signer timelock.Address
	err = l.Tx.Update(func(db timelock.KVStore) error {
		var err error
		signer, err = l.Sigs.VerifySignature(db, sig, payload, l.ChainID)
		return err
	})
	return signer, err
}

// hexBytes is a binary value encoded as a hex string in JSON.
type hexBytes []byte

func (b hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

func (b *hexBytes) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	v, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "invalid hex value")
	}
	*b = v
	return nil
}
