package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts timelock.Options, kv timelock.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(timelock.Options, timelock.KVStore) error {
	c.called++
	return nil
}

func TestInitGenesis(t *testing.T) {
	cs := NewCommitStore(store.MemStore())
	counter := &countInit{}
	init := ChainInitializers(dummyInit{}, counter)

	gen := &Genesis{
		ChainID:    "test-chain",
		AppOptions: timelock.Options{dummyKey: []byte(`"foobar"`)},
	}
	applied, err := InitGenesis(cs, gen, init)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 1, counter.called)

	// Second start with the same genesis is a noop.
	applied, err = InitGenesis(cs, gen, init)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, 1, counter.called)

	err = cs.View(func(db timelock.ReadOnlyKVStore) error {
		v, err := db.Get([]byte(dummyKey))
		assert.Equal(t, "foobar", string(v))
		return err
	})
	require.NoError(t, err)

	other := &Genesis{ChainID: "other-chain"}
	_, err = InitGenesis(cs, other, init)
	assert.True(t, errors.ErrState.Is(err))
}

func TestInitGenesisFailureRollsBack(t *testing.T) {
	cs := NewCommitStore(store.MemStore())
	gen := &Genesis{
		ChainID:    "test-chain",
		AppOptions: timelock.Options{dummyKey: []byte(`{"not": "a string"}`)},
	}
	_, err := InitGenesis(cs, gen, dummyInit{})
	assert.True(t, errors.ErrInput.Is(err))

	err = cs.View(func(db timelock.ReadOnlyKVStore) error {
		chainID, err := genesisLoaded(db)
		assert.Equal(t, "", chainID)
		return err
	})
	require.NoError(t, err)
}

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, GenesisFile)
	want := &Genesis{
		ChainID:    "test-chain",
		AppOptions: timelock.Options{dummyKey: []byte(`"foobar"`)},
	}
	require.NoError(t, WriteGenesis(path, want))

	got, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, want.ChainID, got.ChainID)
	assert.JSONEq(t, `"foobar"`, string(got.AppOptions[dummyKey]))

	require.NoError(t, ioutil.WriteFile(path, []byte(`{"chain_id": "x"}`), 0600))
	_, err = LoadGenesis(path)
	assert.True(t, errors.ErrInput.Is(err))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
