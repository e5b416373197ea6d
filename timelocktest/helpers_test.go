package timelocktest

import (
	"testing"
	"time"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/timelocktest/assert"
)

func TestAddressHelpers(t *testing.T) {
	a := RandomAddr(t)
	assert.Nil(t, a.Validate())
	assert.Equal(t, a, DecodeAddr(t, a.String()))
	assert.Equal(t, a, ParseAddress(t, "hex:"+a.String()))
	assert.Equal(t, true, ZeroAddr().IsZero())
}

func TestKeyCondition(t *testing.T) {
	key := NewKey(t)
	c := KeyCondition(key)
	assert.Nil(t, c.Validate())
	assert.Equal(t, c, KeyCondition(key))

	ext, typ, _, err := c.Parse()
	assert.Nil(t, err)
	assert.Equal(t, "sigs", ext)
	assert.Equal(t, "ed25519", typ)
}

func TestClock(t *testing.T) {
	start := time.Unix(1000, 0)
	c := NewClock(start)
	c.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), c.Now())

	ctx := Context(c.Now())
	now, ok := timelock.BlockTime(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, start.Add(time.Minute), now)
}

func TestCommitKVStore(t *testing.T) {
	db, cleanup := CommitKVStore(t)
	defer cleanup()

	assert.Nil(t, db.Set([]byte("k"), []byte("v")))
	id, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
}
