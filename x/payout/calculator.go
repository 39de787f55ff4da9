package payout

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// DefaultMaxLenPayout is the number of payout entries accepted when the
// caller does not declare a limit. Any payout of this length or shorter
// must be accepted by marketplaces.
const DefaultMaxLenPayout uint32 = 10

// OwnerLookup resolves the current owner of a token.
type OwnerLookup interface {
	OwnerOf(db store.ReadOnlyKVStore, tokenID string) (ledger.AccountID, error)
}

// Calculator computes payouts for tokens.
type Calculator struct {
	owners OwnerLookup
}

// NewCalculator returns a calculator that uses given lookup to find token
// owners.
func NewCalculator(owners OwnerLookup) *Calculator {
	return &Calculator{owners: owners}
}

// Payout returns how given balance must be split among the beneficiaries
// of the token. When maxLenPayout is nil, DefaultMaxLenPayout is used.
//
// The creator receives the configured royalty rounded down and the owner
// receives the rest, so that the sum of the payout is always equal to the
// balance. If the creator owns the token, a single entry is returned.
func (c *Calculator) Payout(db store.ReadOnlyKVStore, tokenID string, balance coin.Amount, maxLenPayout *uint32) (*Payout, error) {
	maxLen := DefaultMaxLenPayout
	if maxLenPayout != nil {
		maxLen = *maxLenPayout
	}
	if maxLen == 0 {
		return nil, errors.Wrap(errors.ErrInput, "max len payout must be at least 1")
	}

	owner, err := c.owners.OwnerOf(db, tokenID)
	if err != nil {
		return nil, errors.Wrap(err, "token owner")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}

	payout := &Payout{Payout: make(map[ledger.AccountID]coin.Amount, 2)}

	// A creator owning the token keeps the whole balance in a single entry.
	var creatorShare coin.Amount
	if conf.HasRoyalty() && conf.Creator != owner {
		creatorShare = coin.ApplyBasisPoint(balance, conf.Rate)
		payout.Payout[conf.Creator] = creatorShare
	}
	ownerShare, err := balance.Sub(creatorShare)
	if err != nil {
		return nil, errors.Wrap(err, "owner share")
	}
	payout.Payout[owner] = ownerShare

	if n := len(payout.Payout); uint32(n) > maxLen {
		return nil, errors.Wrapf(ErrLimitExceeded, "payout has %d entries, max %d", n, maxLen)
	}
	return payout, nil
}
