package timelock

import (
	"context"
	"time"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the timelock module

const (
	contextKeyBlockTime contextKey = iota
	contextKeyLogger
)

// DefaultLogger is used for all context that have not
// set anything themselves
var DefaultLogger = log.NewNopLogger()

// WithBlockTime returns a context with the moment that all operations
// executed with this context consider to be "now".
func WithBlockTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyBlockTime, t)
}

// BlockTime returns the "now" attached to the context. Second value is false
// if the time was not set.
func BlockTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	return t, ok
}

// IsExpired returns true if given time is in the past as compared to the "now"
// as declared in the context. Expiration is inclusive, meaning that if current
// time is equal to the expiration time than this function returns true.
//
// This function panics if the block time is not provided in the context. This
// must never happen. The panic is here to prevent from broken setup to be
// processing data incorrectly.
func IsExpired(ctx context.Context, t UnixTime) bool {
	blockNow, ok := BlockTime(ctx)
	if !ok {
		panic("block time is not present")
	}
	return t <= AsUnixTime(blockNow)
}

// WithLogger sets the logger for this context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
