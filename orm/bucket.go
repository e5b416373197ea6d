package orm

import (
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket struct {
	name   string
	prefix []byte
	model  reflect.Type
}

// NewModelBucket returns a bucket storing models of the same type as given
// example. Bucket name must be 3 to 10 lower case letters or underscores.
func NewModelBucket(name string, example Model) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	t := reflect.TypeOf(example)
	if t.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	return ModelBucket{
		name:   name,
		prefix: []byte(name + ":"),
		model:  t,
	}
}

// Name returns the name of this bucket.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key used in the store for given model key.
func (b ModelBucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// Sequence returns a sequence bound to this bucket.
func (b ModelBucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// One loads the model stored under given key into dest. ErrNotFound is
// returned if there is no such entity and ErrType if dest cannot hold it.
func (b ModelBucket) One(db timelock.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, b.model)
	}
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %s %X: %s", b.name, key, err)
	}
	return nil
}

// Has returns true if an entity with given key exists.
func (b ModelBucket) Has(db timelock.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Put validates and saves given model under given key. Any existing value is
// overwritten.
func (b ModelBucket) Put(db timelock.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != b.model {
		return errors.Wrapf(errors.ErrType, "bucket %s cannot store %T", b.name, m)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode %T: %s", m, err)
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Delete removes the entity with given key. ErrNotFound is returned if it
// does not exist.
func (b ModelBucket) Delete(db timelock.KVStore, key []byte) error {
	has, err := b.Has(db, key)
	if err != nil {
		return err
	}
	if !has {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return db.Delete(b.DBKey(key))
}

// Iterate calls fn for every entity with a key in the [start, end) range, in
// ascending key order. Nil start or end means the range is open on that side.
// Returning ErrIteratorDone from fn stops the iteration without an error.
func (b ModelBucket) Iterate(db timelock.ReadOnlyKVStore, start, end []byte, fn func(key []byte, m Model) error) error {
	from := b.DBKey(start)
	var to []byte
	if end == nil {
		to = prefixEnd(b.prefix)
	} else {
		to = b.DBKey(end)
	}

	it, err := db.Iterator(from, to)
	if err != nil {
		return errors.Wrap(err, "cannot create iterator")
	}
	defer it.Release()

	for {
		key, raw, err := it.Next()
		if err != nil {
			if errors.ErrIteratorDone.Is(err) {
				return nil
			}
			return err
		}
		m := reflect.New(b.model.Elem()).Interface().(Model)
		if err := proto.Unmarshal(raw, m); err != nil {
			return errors.Wrapf(errors.ErrModel, "cannot decode %s %X: %s", b.name, key, err)
		}
		if err := fn(key[len(b.prefix):], m); err != nil {
			if errors.ErrIteratorDone.Is(err) {
				return nil
			}
			return err
		}
	}
}

// prefixEnd returns the first key that does not start with given prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
