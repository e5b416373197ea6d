package store

import (
	"bytes"
	"encoding/binary"
	"sort"
	"testing"

	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/timelocktest/assert"
)

// TestSuite groups the store behaviour checks that every CacheableKVStore
// implementation must pass. Package specific tests provide the constructor,
// the rest of the logic is generic to the KVStore interface.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store together with a function
// releasing all resources it holds.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite that runs all checks against stores created by
// given constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet checks that a cache wrap sees the data of its parent and that
// written or discarded changes propagate accordingly.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("deposit"), []byte("one")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writes are only visible in the cache until written
	k2, v2 := []byte("index"), []byte("two")
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// discarded changes never reach the parent
	k3, v3 := []byte("event"), []byte("three")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	assert.Nil(t, c2.Delete(k))
	c2.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	// deletes are applied on write
	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	s.AssertGetHas(t, c3, k, nil, false)
	s.AssertGetHas(t, base, k, v, true)
	assert.Nil(t, c3.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// NestedCacheWrap checks that a savepoint inside a savepoint can be rolled
// back without affecting the outer one.
func (s *TestSuite) NestedCacheWrap(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	outer := base.CacheWrap()
	assert.Nil(t, outer.Set([]byte("a"), []byte("outer")))

	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set([]byte("a"), []byte("inner")))
	assert.Nil(t, inner.Set([]byte("b"), []byte("inner")))
	s.AssertGetHas(t, inner, []byte("a"), []byte("inner"), true)
	inner.Discard()

	s.AssertGetHas(t, outer, []byte("a"), []byte("outer"), true)
	s.AssertGetHas(t, outer, []byte("b"), nil, false)
	assert.Nil(t, outer.Write())

	s.AssertGetHas(t, base, []byte("a"), []byte("outer"), true)
	s.AssertGetHas(t, base, []byte("b"), nil, false)
}

// Iterate checks range queries over the combined view of a cache wrap and its
// parent, in both directions, including overwritten and deleted entries.
func (s *TestSuite) Iterate(t *testing.T) {
	parentData := seqModels(0, 20, "p")
	childData := seqModels(10, 30, "c")
	// child overwrites 10..19, adds 20..29 and deletes 0..4
	deleted := parentData[:5]

	var want []Model
	want = append(want, parentData[5:10]...)
	want = append(want, childData...)
	want = sortModels(want)

	cases := map[string]struct {
		start, end []byte
		reverse    bool
		want       []Model
	}{
		"full range": {
			want: want,
		},
		"full range reversed": {
			reverse: true,
			want:    reverse(want),
		},
		"with start": {
			start: seqKey(12),
			want:  want[7:],
		},
		"with end": {
			end:  seqKey(12),
			want: want[:7],
		},
		"bounded": {
			start: seqKey(8),
			end:   seqKey(22),
			want:  want[3:17],
		},
		"bounded reversed": {
			start:   seqKey(8),
			end:     seqKey(22),
			reverse: true,
			want:    reverse(want[3:17]),
		},
		"only deleted entries": {
			start: seqKey(0),
			end:   seqKey(5),
			want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()

			for _, m := range parentData {
				assert.Nil(t, base.Set(m.Key, m.Value))
			}
			child := base.CacheWrap()
			for _, m := range childData {
				assert.Nil(t, child.Set(m.Key, m.Value))
			}
			for _, m := range deleted {
				assert.Nil(t, child.Delete(m.Key))
			}

			var (
				it  Iterator
				err error
			)
			if tc.reverse {
				it, err = child.ReverseIterator(tc.start, tc.end)
			} else {
				it, err = child.Iterator(tc.start, tc.end)
			}
			assert.Nil(t, err)
			defer it.Release()

			got := consume(t, it)
			if len(got) != len(tc.want) {
				t.Fatalf("want %d entries, got %d", len(tc.want), len(got))
			}
			for i := range got {
				if !bytes.Equal(tc.want[i].Key, got[i].Key) {
					t.Fatalf("entry %d: want key %X, got %X", i, tc.want[i].Key, got[i].Key)
				}
				assert.Equal(t, tc.want[i].Value, got[i].Value)
			}
		})
	}
}

// AssertGetHas checks both Get and Has results for given key.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func consume(t testing.TB, it Iterator) []Model {
	t.Helper()
	var res []Model
	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		assert.Nil(t, err)
		res = append(res, Pair(key, value))
	}
}

// seqKey returns a key that sorts the same way as the number it encodes.
func seqKey(n uint64) []byte {
	key := make([]byte, 9)
	key[0] = 'k'
	binary.BigEndian.PutUint64(key[1:], n)
	return key
}

func seqModels(from, to uint64, value string) []Model {
	var res []Model
	for i := from; i < to; i++ {
		res = append(res, Pair(seqKey(i), append([]byte(value), seqKey(i)...)))
	}
	return res
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}
