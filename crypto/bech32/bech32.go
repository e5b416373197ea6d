// Package bech32 converts addresses to and from the bech32 format. It is a
// thin layer over btcutil that takes care of the 8 to 5 bit regrouping.
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/timelock/errors"
)

// Decode converts given bech32 encoded representation into raw payload and a
// human readable part.
func Decode(raw string) (string, []byte, error) {
	hrp, payload, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	payload, err = bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrInput, "convert bits")
	}
	return hrp, payload, nil
}

// DecodePrefixed works like Decode but fails unless the human readable part
// is the expected one.
func DecodePrefixed(hrp, raw string) ([]byte, error) {
	got, payload, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if got != hrp {
		return nil, errors.ErrInput.Newf("want %q prefix, got %q", hrp, got)
	}
	return payload, nil
}

// Encode converts given bytes into bech32 encoded representation.
func Encode(hrp string, payload []byte) ([]byte, error) {
	payload, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "convert bits")
	}
	raw, err := bech32.Encode(hrp, payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return []byte(raw), nil
}
