package timelocktest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/iov-one/timelock"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// timelock.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) timelock.Address {
	t.Helper()

	addr, err := timelock.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) timelock.Address {
	t.Helper()
	raw := make([]byte, timelock.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := timelock.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not valid: %s", err)
	}
	return a
}

// DecodeAddr takes a hex encoded address string and returns it's raw
// representation. This function ensures that returned value is a valid
// address.
func DecodeAddr(t testing.TB, encoded string) timelock.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode hex string: %s", err)
	}
	a := timelock.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("decoded string is not a valid address: %s", err)
	}
	return a
}

// ZeroAddr returns the null identity.
func ZeroAddr() timelock.Address {
	return make(timelock.Address, timelock.AddressLength)
}
