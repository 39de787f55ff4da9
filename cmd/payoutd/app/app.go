/*
Package app links together all the various components
to construct the payoutd application.
*/
package app

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	"github.com/iov-one/ledger/store"
	"github.com/iov-one/ledger/x/nft"
	"github.com/iov-one/ledger/x/payout"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is the name of the application, used as the logging module.
const Name = "payoutd"

// Router returns a router dispatching to all the extensions.
func Router(tokens *nft.Controller) *app.Router {
	r := app.NewRouter()
	nft.RegisterRoutes(r, tokens)
	calc := payout.NewCalculator(tokens)
	payout.RegisterRoutes(r, payout.NewCoordinator(calc, tokens))
	return r
}

// QueryRouter returns a query router, allowing access to "nft/token" and
// "nft_payout".
func QueryRouter(tokens *nft.Controller) *app.QueryRouter {
	qr := app.NewQueryRouter()
	nft.RegisterQuery(qr, tokens)
	payout.RegisterQuery(qr, payout.NewCalculator(tokens))
	return qr
}

// Initializers returns the genesis initializers of all extensions. The
// royalty configuration is stored before the tokens are minted.
func Initializers() ledger.Initializer {
	return app.ChainInitializers(
		&payout.Initializer{},
		&nft.Initializer{},
	)
}

// Application constructs the application working on given store.
func Application(db store.CacheableKVStore, logger log.Logger) *app.Application {
	tokens := nft.NewController(nft.NewBucket())
	return app.NewApplication(
		Name,
		db,
		Router(tokens),
		app.DefaultDecorators(),
		QueryRouter(tokens),
		Initializers(),
	).WithLogger(logger)
}
