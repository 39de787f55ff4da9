package payout

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	"github.com/iov-one/ledger/store"
)

var _ ledger.Initializer = (*Initializer)(nil)

// Initializer stores the royalty configuration declared in the genesis
// file under "conf" -> "payout". Missing configuration results in no
// royalty being paid.
type Initializer struct{}

func (*Initializer) FromGenesis(opts ledger.Options, db store.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}
