package store

import "github.com/iov-one/timelock"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = timelock.ReadOnlyKVStore
	SetDeleter       = timelock.SetDeleter
	KVStore          = timelock.KVStore
	Batch            = timelock.Batch
	Iterator         = timelock.Iterator
	CacheableKVStore = timelock.CacheableKVStore
	KVCacheWrap      = timelock.KVCacheWrap
	CommitKVStore    = timelock.CommitKVStore
	CommitID         = timelock.CommitID
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
