package nft

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/store"
)

var _ ledger.Initializer = (*Initializer)(nil)

// Initializer fulfils the Initializer interface to load tokens from the
// genesis file.
type Initializer struct{}

// FromGenesis stores the collection metadata declared under "conf" ->
// "nft", if any, then parses initial tokens from genesis and saves them in
// the database.
func (*Initializer) FromGenesis(opts ledger.Options, db store.KVStore) error {
	var meta ContractMetadata
	if err := gconf.InitConfig(db, opts, confPkg, &meta); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}

	var genesis struct {
		Tokens []struct {
			ID       string           `json:"token_id"`
			Owner    ledger.AccountID `json:"owner_id"`
			Metadata TokenMetadata    `json:"metadata"`
		} `json:"tokens"`
	}
	if err := opts.ReadOptions("nft", &genesis); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	ctrl := NewController(NewBucket())
	for i, t := range genesis.Tokens {
		if _, err := ctrl.Mint(db, t.ID, t.Owner, t.Metadata); err != nil {
			return errors.Wrapf(err, "token #%d", i)
		}
	}
	return nil
}
