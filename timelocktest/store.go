package timelocktest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/store/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db timelock.CommitKVStore, cleanup func()) {
	t.Helper()
	dbpath, err := ioutil.TempDir("", "timelocktest-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	s, err := iavl.OpenCommitStore(dbpath, "db", dbm.GoLevelDBBackend, 0)
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open the store: %s", err)
	}
	return s, func() {
		s.Close()
		os.RemoveAll(dbpath)
	}
}
