package app

import (
	"sync"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// CommitStore runs transactions against a ledger store. Writers are
// serialized and each of them works on its own cache wrap of the store, so
// that a failed transaction leaves no trace. After a successful transaction
// the changes are flushed and, if the store supports it, committed to disk.
type CommitStore struct {
	mu       sync.RWMutex
	store    timelock.CacheableKVStore
	onCommit func(timelock.CommitID)
}

var _ timelock.Transactor = (*CommitStore)(nil)

// NewCommitStore returns a transactor over given store.
func NewCommitStore(store timelock.CacheableKVStore) *CommitStore {
	return &CommitStore{store: store}
}

// OnCommit registers a function called with the version info after every
// commit of a persistent store.
func (cs *CommitStore) OnCommit(fn func(timelock.CommitID)) {
	cs.mu.Lock()
	cs.onCommit = fn
	cs.mu.Unlock()
}

// Update executes fn in a transaction. When fn returns an error or panics
// all changes are discarded.
func (cs *CommitStore) Update(fn func(db timelock.KVStore) error) (err error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cache := cs.store.CacheWrap()
	defer func() {
		if err != nil {
			cache.Discard()
		}
	}()
	defer errors.Recover(&err)

	if err := fn(cache); err != nil {
		return err
	}
	if err := cache.Write(); err != nil {
		cs.rollback()
		return errors.Wrap(err, "flush transaction")
	}
	if err := cs.commit(); err != nil {
		cs.rollback()
		return err
	}
	return nil
}

// rollbacker is implemented by stores that keep flushed but not yet
// committed changes in a working state.
type rollbacker interface {
	Rollback()
}

// rollback drops changes flushed to the store by a transaction that failed
// to commit.
func (cs *CommitStore) rollback() {
	if rb, ok := cs.store.(rollbacker); ok {
		rb.Rollback()
	}
}

func (cs *CommitStore) commit() error {
	committer, ok := cs.store.(timelock.CommitKVStore)
	if !ok {
		return nil
	}
	id, err := committer.Commit()
	if err != nil {
		return errors.Wrap(err, "commit")
	}
	if cs.onCommit != nil {
		cs.onCommit(id)
	}
	return nil
}

// View executes fn with a read only access to the committed state. Any
// number of views can run at the same time, but not together with an update.
func (cs *CommitStore) View(fn func(db timelock.ReadOnlyKVStore) error) (err error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	defer errors.Recover(&err)
	return fn(cs.store)
}

// CommitInfo returns the latest committed version. It is empty for stores
// that are not persistent.
func (cs *CommitStore) CommitInfo() timelock.CommitID {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if committer, ok := cs.store.(timelock.CommitKVStore); ok {
		return committer.LatestVersion()
	}
	return timelock.CommitID{}
}

//------- genesis marker ---------

// _tl: is a prefix for internal data
const genesisKey = "_tl:genesis"

// genesisLoaded returns the chain id of the genesis applied to the store, if
// any.
func genesisLoaded(kv timelock.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(genesisKey))
	if err != nil {
		return "", errors.Wrap(err, "load genesis marker")
	}
	return string(v), nil
}

// saveGenesisMarker stores the chain id of the applied genesis.
// Returns error if already set, or invalid name
func saveGenesisMarker(kv timelock.KVStore, chainID string) error {
	if !IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(genesisKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load genesis marker")
	}
	if exists {
		return errors.Wrap(errors.ErrUnauthorized, "genesis already applied")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save genesis marker")
	}
	return nil
}
