package htlc

import (
	"context"
	"math"

	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the htlc module

const (
	contextKeyHeight contextKey = iota
	contextKeyCaller
	contextKeyLogger
	contextKeyRecords
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithHeight sets the block height for the context.
// It panics if height is already set or negative.
func WithHeight(ctx context.Context, height int64) context.Context {
	if height < 0 {
		panic("negative block height")
	}
	if _, ok := GetHeight(ctx); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height as declared by the host ledger.
// The second value is false if the height was never set.
func GetHeight(ctx context.Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithCaller sets the identity of the account that issued the current call.
// A sub-call made by a contract replaces the caller with the contract
// address for the duration of the sub-call.
func WithCaller(ctx context.Context, caller Address) context.Context {
	return context.WithValue(ctx, contextKeyCaller, caller)
}

// GetCaller returns the identity of the account that issued the current call,
// as resolved by the host ledger.
func GetCaller(ctx context.Context) (Address, bool) {
	val, ok := ctx.Value(contextKeyCaller).(Address)
	return val, ok && len(val) != 0
}

// WithLogger sets the logger for this context.
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
// DefaultLogger if none was set.
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// ExpiryHeight returns the absolute height offset blocks after now. The
// result saturates at the maximum height instead of wrapping around.
func ExpiryHeight(now int64, offset uint64) int64 {
	if now < 0 {
		now = 0
	}
	if offset > uint64(math.MaxInt64-now) {
		return math.MaxInt64
	}
	return now + int64(offset)
}
