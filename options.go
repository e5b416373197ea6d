package timelock

import (
	"encoding/json"

	"github.com/iov-one/timelock/errors"
)

// Options are the genesis options.
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q: %s", key, err)
	}
	return nil
}

// Stream expects an array of json elements under given key and returns a
// function that decodes one element at a time. ErrEmpty is returned once all
// elements are consumed, any call after that returns ErrState.
func (o Options) Stream(key string) (func(obj interface{}) error, error) {
	msg := o[key]
	if len(msg) == 0 {
		return nil, errors.Wrapf(errors.ErrEmpty, "no %q", key)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%q is not a list: %s", key, err)
	}

	var next int
	return func(obj interface{}) error {
		switch {
		case next > len(items):
			return errors.Wrap(errors.ErrState, "stream closed")
		case next == len(items):
			next++
			return errors.ErrEmpty
		}
		raw := items[next]
		next++
		if err := json.Unmarshal(raw, obj); err != nil {
			return errors.Wrapf(errors.ErrInput, "element %d: %s", next-1, err)
		}
		return nil
	}, nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
