package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/timelock"
	"golang.org/x/crypto/ed25519"
)

func TestKeygenKeyaddr(t *testing.T) {
	dir, err := ioutil.TempDir("", "keys")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	defer os.RemoveAll(dir)
	keyPath := filepath.Join(dir, "priv.key")

	if err := cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}); err != nil {
		t.Fatalf("keygen: %s", err)
	}
	if err := cmdKeygen(nil, ioutil.Discard, []string{"-key", keyPath}); err == nil {
		t.Fatal("keygen must not overwrite an existing key")
	}

	raw, err := ioutil.ReadFile(keyPath)
	if err != nil {
		t.Fatalf("cannot read key: %s", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		t.Fatalf("unexpected key size: %d", len(raw))
	}

	var out bytes.Buffer
	if err := cmdKeyaddr(nil, &out, []string{"-key", keyPath}); err != nil {
		t.Fatalf("keyaddr: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want hex and bech32 lines, got %q", out.String())
	}

	want := keyAddress(ed25519.PrivateKey(raw))
	if lines[0] != want.String() {
		t.Fatalf("want %s hex address, got %s", want, lines[0])
	}
	got, err := timelock.ParseAddress("bech32:" + lines[1])
	if err != nil {
		t.Fatalf("cannot parse bech32 address: %s", err)
	}
	if !got.Equals(want) {
		t.Fatalf("bech32 address %s does not match %s", lines[1], want)
	}
	if !strings.HasPrefix(lines[1], bech32Prefix+"1") {
		t.Fatalf("unexpected bech32 prefix: %s", lines[1])
	}
}

func TestKeyaddrInvalidKey(t *testing.T) {
	fd, err := ioutil.TempFile("", "priv.key")
	if err != nil {
		t.Fatalf("cannot create temporary file: %s", err)
	}
	defer os.Remove(fd.Name())
	fd.Write([]byte("too short"))
	fd.Close()

	if err := cmdKeyaddr(nil, ioutil.Discard, []string{"-key", fd.Name()}); err == nil {
		t.Fatal("invalid key must be rejected")
	}
}
