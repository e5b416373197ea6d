package main

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSignApproval(t *testing.T) {
	f := newAPIFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	dir, err := ioutil.TempDir("", "sign")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	defer os.RemoveAll(dir)
	keyPath := filepath.Join(dir, "priv.key")
	if err := ioutil.WriteFile(keyPath, f.key, 0600); err != nil {
		t.Fatalf("cannot write key: %s", err)
	}

	var signed bytes.Buffer
	input := strings.NewReader(`{
		"amount": "12.50"
	}`)
	if err := cmdSign(input, &signed, []string{"-key", keyPath, "-api", srv.URL, "-action", actionApprove}); err != nil {
		t.Fatalf("sign: %s", err)
	}
	f.do(t, "POST", "/token/approve", signed.String(), http.StatusOK, nil)

	var balance struct {
		Allowance string `json:"custody_allowance"`
	}
	f.do(t, "GET", "/token/balances/"+f.creator.String(), "", http.StatusOK, &balance)
	if balance.Allowance != "12.50" {
		t.Fatalf("unexpected allowance: %s", balance.Allowance)
	}

	// The sequence was consumed, so the same request signed for a given
	// sequence is rejected.
	var stale bytes.Buffer
	args := []string{"-key", keyPath, "-chain-id", testChainID, "-sequence", "0", "-action", actionApprove}
	if err := cmdSign(strings.NewReader(`{"amount": "1"}`), &stale, args); err != nil {
		t.Fatalf("sign: %s", err)
	}
	f.do(t, "POST", "/token/approve", stale.String(), http.StatusConflict, nil)
}

func TestSignRequiresInput(t *testing.T) {
	f := newAPIFixture(t)
	dir, err := ioutil.TempDir("", "sign")
	if err != nil {
		t.Fatalf("cannot create temporary directory: %s", err)
	}
	defer os.RemoveAll(dir)
	keyPath := filepath.Join(dir, "priv.key")
	if err := ioutil.WriteFile(keyPath, f.key, 0600); err != nil {
		t.Fatalf("cannot write key: %s", err)
	}

	args := []string{"-key", keyPath, "-chain-id", testChainID, "-sequence", "0"}
	if err := cmdSign(strings.NewReader("  "), ioutil.Discard, args); err == nil {
		t.Fatal("empty input must be rejected")
	}
	if err := cmdSign(strings.NewReader("{not json"), ioutil.Discard, args); err == nil {
		t.Fatal("invalid JSON must be rejected")
	}
}
