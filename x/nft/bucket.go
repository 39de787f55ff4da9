package nft

import (
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

const bucketPrefix = "nft:"

// Bucket stores tokens under their ID.
type Bucket struct{}

// NewBucket returns a bucket for managing tokens.
func NewBucket() Bucket {
	return Bucket{}
}

func (Bucket) key(tokenID string) []byte {
	return []byte(bucketPrefix + tokenID)
}

// Get returns the token with given ID. ErrNotFound is returned if the token
// does not exist.
func (b Bucket) Get(db store.ReadOnlyKVStore, tokenID string) (*Token, error) {
	raw, err := db.Get(b.key(tokenID))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "token %q", tokenID)
	}
	var t Token
	if err := t.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "token %q", tokenID)
	}
	return &t, nil
}

// Has returns true if a token with given ID exists.
func (b Bucket) Has(db store.ReadOnlyKVStore, tokenID string) (bool, error) {
	ok, err := db.Has(b.key(tokenID))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Save validates and writes the token, replacing the previous state.
func (b Bucket) Save(db store.KVStore, t *Token) error {
	if err := t.Validate(); err != nil {
		return errors.Wrap(err, "invalid token")
	}
	raw, err := t.Marshal()
	if err != nil {
		return err
	}
	if err := db.Set(b.key(t.ID), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
