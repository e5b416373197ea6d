/*
Package iavl provides the persistent, versioned store of the ledger. State is
kept in an iavl merkle tree on top of a tendermint database backend, so every
commit produces a new version with its own root hash.
*/
package iavl

import (
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// OpenCommitStore creates a new store with disk backing. The database is
// stored in the dir directory under the given name. A non positive cache
// size means DefaultCacheSize.
func OpenCommitStore(dir, name string, backend dbm.DBBackendType, cacheSize int) (*CommitStore, error) {
	var db dbm.DB
	err := func() (err error) {
		// tendermint panics on unknown backends and unusable directories
		defer errors.Recover(&err)
		db = dbm.NewDB(name, backend, dir)
		return nil
	}()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s database: %s", backend, err)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return NewCommitStore(db, cacheSize)
}

// NewCommitStore loads the latest version of the tree kept in given
// database. An empty database results in an empty store with version 0.
func NewCommitStore(db dbm.DB, cacheSize int) (*CommitStore, error) {
	tree := iavl.NewMutableTree(db, cacheSize)
	if _, err := tree.Load(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return &CommitStore{tree: tree, db: db}, nil
}

// Get returns the value from the working state. Uncommitted changes are
// visible.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Has checks if a key exists.
func (s *CommitStore) Has(key []byte) (bool, error) {
	return s.tree.Has(key), nil
}

// Set adds a new value
func (s *CommitStore) Set(key, value []byte) error {
	s.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (s *CommitStore) Delete(key []byte) error {
	s.tree.Remove(key)
	return nil
}

// NewBatch returns a batch that can write multiple ops to the working state.
// Nothing is persisted until Commit is called.
func (s *CommitStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(s)
}

// CacheWrap gives us a savepoint to perform actions
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *CommitStore) Iterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(s.collect(start, end, true)), nil
}

// ReverseIterator over a domain of keys in descending order. End is exclusive.
func (s *CommitStore) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return store.NewSliceIterator(s.collect(start, end, false)), nil
}

func (s *CommitStore) collect(start, end []byte, ascending bool) []store.Model {
	var res []store.Model
	s.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Pair(key, value))
		return false
	})
	return res
}

// Commit the next version to disk, and returns info
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// Rollback drops all changes made to the working tree since the last
// commit.
func (s *CommitStore) Rollback() {
	s.tree.Rollback()
}

// LatestVersion returns info on the latest version saved to disk
func (s *CommitStore) LatestVersion() store.CommitID {
	version := s.tree.Version()
	if version == 0 {
		return store.CommitID{}
	}
	// working tree may already hold uncommitted changes
	saved, err := s.tree.GetImmutable(version)
	if err != nil {
		return store.CommitID{Version: version}
	}
	return store.CommitID{
		Version: version,
		Hash:    saved.Hash(),
	}
}

// Close releases the database. The store must not be used afterwards.
func (s *CommitStore) Close() error {
	s.db.Close()
	return nil
}
