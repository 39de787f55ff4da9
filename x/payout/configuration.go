package payout

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/gconf"
	amino "github.com/tendermint/go-amino"
)

const confPkg = "payout"

var cdc = amino.NewCodec()

// Configuration declares the creator royalty. An empty configuration means
// that no royalty is paid and the owner receives the whole balance.
type Configuration struct {
	// Creator receives the royalty.
	Creator ledger.AccountID `json:"creator_id,omitempty"`
	// Rate is the part of the balance paid to the creator, in basis
	// points.
	Rate coin.BasisPoint `json:"creator_royalty_bp,omitempty"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate ensures that the royalty is either fully declared or not
// declared at all.
func (c *Configuration) Validate() error {
	if c.Creator == "" {
		if c.Rate != 0 {
			return errors.Wrap(errors.ErrState, "royalty rate requires a creator")
		}
		return nil
	}
	if err := c.Creator.Validate(); err != nil {
		return errors.Wrap(err, "creator")
	}
	if err := c.Rate.Validate(); err != nil {
		return errors.Wrap(err, "royalty rate")
	}
	return nil
}

// HasRoyalty returns true if a creator royalty is declared.
func (c *Configuration) HasRoyalty() bool {
	return c.Creator != ""
}

func (c *Configuration) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}

func (c *Configuration) Unmarshal(raw []byte) error {
	// The binary codec encodes an empty configuration as no bytes at all.
	if len(raw) == 0 {
		*c = Configuration{}
		return nil
	}
	if err := cdc.UnmarshalBinaryBare(raw, c); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

// loadConf returns the stored configuration. Missing configuration is
// equal to an empty one.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return Configuration{}, nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
