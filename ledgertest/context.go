package ledgertest

import (
	"context"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
)

// Ctx returns a context of a message signed by given account and carrying
// given deposit. Empty signer results in an anonymous context.
func Ctx(signer ledger.AccountID, deposit uint64) ledger.Context {
	ctx := context.Background()
	if signer != "" {
		ctx = ledger.WithSigner(ctx, signer)
	}
	if deposit != 0 {
		ctx = ledger.WithDeposit(ctx, coin.NewAmount(deposit))
	}
	return ctx
}
