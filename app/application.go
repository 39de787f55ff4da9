package app

import (
	"sync"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
	"github.com/tendermint/tendermint/libs/log"
)

// Application executes messages and queries against a store.
//
// Messages are executed one at a time, like transactions of a block.
// Queries and checks can run concurrently with each other.
type Application struct {
	mu sync.RWMutex

	name   string
	logger log.Logger
	db     store.CacheableKVStore

	router      *Router
	handler     ledger.Handler
	queryRouter *QueryRouter
	initializer ledger.Initializer
}

// NewApplication returns an application that routes messages with given
// router. Every message passes through the decorators before reaching the
// router.
func NewApplication(
	name string,
	db store.CacheableKVStore,
	router *Router,
	decorators Decorators,
	queryRouter *QueryRouter,
	initializer ledger.Initializer,
) *Application {
	return &Application{
		name:        name,
		logger:      log.NewNopLogger(),
		db:          db,
		router:      router,
		handler:     decorators.WithHandler(router),
		queryRouter: queryRouter,
		initializer: initializer,
	}
}

// DefaultDecorators returns the decorator chain every application should
// use. Deliveries are isolated with a savepoint, so that a failed message
// does not modify the state.
func DefaultDecorators() Decorators {
	return ChainDecorators(
		NewLogging(),
		NewRecovery(),
		NewSavepoint().OnDeliver(),
	)
}

// WithLogger sets the logger passed to all handlers.
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger.With("module", a.name)
	return a
}

// InitChain stores the chain ID and initializes all extensions from the
// genesis. Nothing is written unless all initializers succeed.
func (a *Application) InitChain(gen Genesis) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := a.db.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return errors.Wrap(err, "chain id")
	}
	if a.initializer != nil {
		if err := a.initializer.FromGenesis(gen.AppOptions, cache); err != nil {
			cache.Discard()
			return errors.Wrap(err, "genesis")
		}
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	a.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// ChainID returns the chain ID set during the initialization.
func (a *Application) ChainID() (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	chainID, err := loadChainID(a.db)
	if err != nil {
		return "", err
	}
	if chainID == "" {
		return "", errors.Wrap(errors.ErrState, "chain not initialized")
	}
	return chainID, nil
}

// Check verifies if the message registered under given path would be
// accepted. The state is never modified.
//
// The context should carry the signer and the deposit of the message. The
// chain ID and the logger are set by the application.
func (a *Application) Check(ctx ledger.Context, path string, raw []byte) (*ledger.CheckResult, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	ctx, msg, err := a.prepare(ctx, path, raw)
	if err != nil {
		return nil, err
	}
	cache := a.db.CacheWrap()
	defer cache.Discard()
	return a.handler.Check(ctx, cache, msg)
}

// Deliver executes the message registered under given path. All changes
// made by a failed message are discarded.
//
// The context should carry the signer and the deposit of the message. The
// chain ID and the logger are set by the application.
func (a *Application) Deliver(ctx ledger.Context, path string, raw []byte) (*ledger.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, msg, err := a.prepare(ctx, path, raw)
	if err != nil {
		return nil, err
	}
	return a.handler.Deliver(ctx, a.db, msg)
}

// Query runs the read only query registered under given path.
func (a *Application) Query(path string, data []byte) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	h, err := a.queryRouter.Handler(path)
	if err != nil {
		return nil, err
	}
	return h.Query(a.db, data)
}

func (a *Application) prepare(ctx ledger.Context, path string, raw []byte) (ledger.Context, ledger.Msg, error) {
	chainID, err := loadChainID(a.db)
	if err != nil {
		return nil, nil, err
	}
	if chainID == "" {
		return nil, nil, errors.Wrap(errors.ErrState, "chain not initialized")
	}
	msg, err := a.router.Decode(path, raw)
	if err != nil {
		return nil, nil, err
	}
	ctx = ledger.WithChainID(ctx, chainID)
	ctx = ledger.WithLogger(ctx, a.logger)
	if signer, ok := ledger.GetSigner(ctx); ok {
		ctx = ledger.WithLogInfo(ctx, "signer", signer)
	}
	return ctx, msg, nil
}
