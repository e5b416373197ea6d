package timelocktest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/timelock"
	"golang.org/x/crypto/ed25519"
)

// NewKey returns a freshly generated ed25519 private key.
func NewKey(t testing.TB) ed25519.PrivateKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("cannot generate a key: %s", err)
	}
	return priv
}

// KeyCondition returns the condition controlled by given key. It is the same
// derivation the key commands of the daemon use.
func KeyCondition(key ed25519.PrivateKey) timelock.Condition {
	pub := key.Public().(ed25519.PublicKey)
	return timelock.NewCondition("sigs", "ed25519", pub)
}

// NewCondition returns a condition of a new, random key.
func NewCondition(t testing.TB) timelock.Condition {
	t.Helper()
	return KeyCondition(NewKey(t))
}
