package ledger

import (
	"context"
	"fmt"
	"regexp"

	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the ledger module

const (
	contextKeyChainID contextKey = iota
	contextKeyLogger
	contextKeySigner
	contextKeyDeposit
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithChainID sets the chain id for the Context.
// panics if called with chain id already set
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("Chain ID already set in Context")
	}
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id: %q", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the current chain id
// panics if chain id not already set (should never happen)
func GetChainID(ctx Context) string {
	if x := ctx.Value(contextKeyChainID); x == nil {
		panic("Chain id is not in context")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for this Context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithSigner sets the account that signed the currently processed message.
// panics if called with signer already set
func WithSigner(ctx Context, signer AccountID) Context {
	if ctx.Value(contextKeySigner) != nil {
		panic("Signer already set in Context")
	}
	return context.WithValue(ctx, contextKeySigner, signer)
}

// GetSigner returns the account that signed the currently processed
// message.
func GetSigner(ctx Context) (AccountID, bool) {
	val, ok := ctx.Value(contextKeySigner).(AccountID)
	return val, ok
}

// WithDeposit sets the amount attached to the currently processed message.
// panics if called with deposit already set
func WithDeposit(ctx Context, deposit coin.Amount) Context {
	if ctx.Value(contextKeyDeposit) != nil {
		panic("Deposit already set in Context")
	}
	return context.WithValue(ctx, contextKeyDeposit, deposit)
}

// GetDeposit returns the amount attached to the currently processed
// message. Zero is returned if nothing was attached.
func GetDeposit(ctx Context) coin.Amount {
	val, _ := ctx.Value(contextKeyDeposit).(coin.Amount)
	return val
}

// OneYocto is the smallest amount that can be attached to a message. Some
// operations require exactly this deposit to prove that the message was
// signed with a full access key.
var OneYocto = coin.NewAmount(1)

// RequireOneYocto returns ErrUnauthorized unless exactly one smallest unit
// is attached to the currently processed message.
func RequireOneYocto(ctx Context) error {
	if d := GetDeposit(ctx); !d.Equals(OneYocto) {
		return errors.Wrapf(errors.ErrUnauthorized, "requires attached deposit of exactly %s, got %s", OneYocto, d)
	}
	return nil
}

// RequireSigner returns the account that signed the currently processed
// message. ErrUnauthorized is returned for anonymous messages.
func RequireSigner(ctx Context) (AccountID, error) {
	signer, ok := GetSigner(ctx)
	if !ok || signer == "" {
		return "", errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return signer, nil
}
