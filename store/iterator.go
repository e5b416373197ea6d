package store

import (
	"bytes"

	"github.com/iov-one/timelock/errors"
)

// mergeIterator combines the cached btree items with the iterator of the
// parent store. Cached values win over the parent ones and deleted items hide
// the parent entry with the same key.
type mergeIterator struct {
	parent  Iterator
	items   []keyer
	reverse bool

	// pending parent entry that was read but not returned yet
	pkey, pvalue []byte
	pdone        bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(parent Iterator, items []keyer, reverse bool) *mergeIterator {
	return &mergeIterator{
		parent:  parent,
		items:   items,
		reverse: reverse,
	}
}

// Next returns the next entry of the combined view.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if m.pkey == nil && !m.pdone {
			if err := m.fetchParent(); err != nil {
				return nil, nil, err
			}
		}

		if len(m.items) == 0 {
			if m.pdone {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "merge iterator")
			}
			return m.popParent()
		}

		if !m.pdone {
			cmp := bytes.Compare(m.items[0].Key(), m.pkey)
			if m.reverse {
				cmp = -cmp
			}
			if cmp > 0 {
				return m.popParent()
			}
			if cmp == 0 {
				// cached entry shadows the parent one
				m.pkey, m.pvalue = nil, nil
			}
		}

		item := m.items[0]
		m.items = m.items[1:]
		if set, ok := item.(setItem); ok {
			return set.key, set.value, nil
		}
		// deleted item, skip
	}
}

func (m *mergeIterator) fetchParent() error {
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.pkey, m.pvalue = key, value
	case errors.ErrIteratorDone.Is(err):
		m.pdone = true
	default:
		return err
	}
	return nil
}

func (m *mergeIterator) popParent() ([]byte, []byte, error) {
	key, value := m.pkey, m.pvalue
	m.pkey, m.pvalue = nil, nil
	return key, value, nil
}

// Release releases the parent iterator and drops cached items.
func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
	m.pdone = true
	m.pkey, m.pvalue = nil, nil
}
