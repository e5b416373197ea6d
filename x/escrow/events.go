package escrow

import (
	"math"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// maxEventsPage limits the number of events returned by a single query.
const maxEventsPage = 1000

// EventLog is the append only audit trail of the escrow. Events are numbered
// from 1 in the order their transactions were committed.
type EventLog struct {
	bucket orm.ModelBucket
	seq    orm.Sequence
}

// NewEventLog returns an event log stored in its own bucket.
func NewEventLog() *EventLog {
	b := orm.NewModelBucket("event", &Event{})
	return &EventLog{
		bucket: b,
		seq:    b.Sequence("id"),
	}
}

// Emit appends the event and returns its number.
func (l *EventLog) Emit(db timelock.KVStore, e *Event) (uint64, error) {
	if err := e.Validate(); err != nil {
		return 0, errors.Wrap(err, "invalid event")
	}
	key, err := l.seq.NextVal(db)
	if err != nil {
		return 0, errors.Wrap(err, "event sequence")
	}
	if err := l.bucket.Put(db, key, e); err != nil {
		return 0, errors.Wrap(err, "cannot store event")
	}
	n, err := orm.DecodeSequence(key)
	return uint64(n), err
}

// NumberedEvent is an event together with its position in the log.
type NumberedEvent struct {
	Number uint64
	*Event
}

// Since returns up to limit events with a number greater than after, oldest
// first. Limit is capped and a non positive limit returns a full page.
func (l *EventLog) Since(db timelock.ReadOnlyKVStore, after uint64, limit int) ([]NumberedEvent, error) {
	if limit <= 0 || limit > maxEventsPage {
		limit = maxEventsPage
	}
	res := make([]NumberedEvent, 0, 8)
	if after >= math.MaxInt64 {
		return res, nil
	}
	start := orm.EncodeSequence(int64(after) + 1)
	err := l.bucket.Iterate(db, start, nil, func(key []byte, m orm.Model) error {
		n, err := orm.DecodeSequence(key)
		if err != nil {
			return err
		}
		res = append(res, NumberedEvent{Number: uint64(n), Event: m.(*Event)})
		if len(res) == limit {
			return errors.ErrIteratorDone
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Len returns the number of emitted events.
func (l *EventLog) Len(db timelock.ReadOnlyKVStore) (uint64, error) {
	n, err := l.seq.Latest(db)
	return uint64(n), err
}
