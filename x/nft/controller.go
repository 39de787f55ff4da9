package nft

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// Controller implements the token ownership operations. It is used by the
// handlers of this package and by other extensions that need to lookup or
// move tokens.
type Controller struct {
	bucket Bucket
}

// NewController returns a controller using given bucket for persistence.
func NewController(bucket Bucket) *Controller {
	return &Controller{bucket: bucket}
}

// OwnerOf returns the current owner of the token.
func (c *Controller) OwnerOf(db store.ReadOnlyKVStore, tokenID string) (ledger.AccountID, error) {
	t, err := c.bucket.Get(db, tokenID)
	if err != nil {
		return "", err
	}
	return t.Owner, nil
}

// Token returns the full ownership record of the token.
func (c *Controller) Token(db store.ReadOnlyKVStore, tokenID string) (*Token, error) {
	return c.bucket.Get(db, tokenID)
}

// Mint creates a new token owned by given account.
func (c *Controller) Mint(db store.KVStore, tokenID string, owner ledger.AccountID, meta TokenMetadata) (*Token, error) {
	switch ok, err := c.bucket.Has(db, tokenID); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %q", tokenID)
	}
	t := &Token{ID: tokenID, Owner: owner, Metadata: meta}
	if err := c.bucket.Save(db, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Approve grants given account the right to transfer the token. Only the
// owner can grant approvals. Approving an account that is already approved
// replaces its approval with a new one. The new approval ID is returned.
func (c *Controller) Approve(db store.KVStore, signer ledger.AccountID, tokenID string, account ledger.AccountID) (uint64, error) {
	t, err := c.ownedToken(db, signer, tokenID)
	if err != nil {
		return 0, err
	}
	if account == t.Owner {
		return 0, errors.Wrap(errors.ErrInput, "owner cannot be approved")
	}
	id := t.NextApprovalID
	t.NextApprovalID++
	t.Approvals = append(withoutApproval(t.Approvals, account), Approval{Account: account, ApprovalID: id})
	if err := c.bucket.Save(db, t); err != nil {
		return 0, err
	}
	return id, nil
}

// Revoke removes the approval of given account. Revoking an account that
// is not approved is a no-op.
func (c *Controller) Revoke(db store.KVStore, signer ledger.AccountID, tokenID string, account ledger.AccountID) error {
	t, err := c.ownedToken(db, signer, tokenID)
	if err != nil {
		return err
	}
	if _, ok := t.ApprovalOf(account); !ok {
		return nil
	}
	t.Approvals = withoutApproval(t.Approvals, account)
	return c.bucket.Save(db, t)
}

// RevokeAll removes all approvals of the token.
func (c *Controller) RevokeAll(db store.KVStore, signer ledger.AccountID, tokenID string) error {
	t, err := c.ownedToken(db, signer, tokenID)
	if err != nil {
		return err
	}
	if len(t.Approvals) == 0 {
		return nil
	}
	t.Approvals = nil
	return c.bucket.Save(db, t)
}

// Transfer moves the token to the receiver.
//
// The sender must be either the owner or an approved account. If an
// approval ID is provided, it must match the current approval of the
// sender. The receiver must be different than the current owner. On
// success all approvals of the token are cleared.
func (c *Controller) Transfer(
	ctx ledger.Context,
	db store.KVStore,
	sender, receiver ledger.AccountID,
	tokenID string,
	approvalID *uint64,
	memo string,
) error {
	t, err := c.bucket.Get(db, tokenID)
	if err != nil {
		return err
	}

	if sender != t.Owner {
		current, ok := t.ApprovalOf(sender)
		if !ok {
			return errors.Wrapf(ErrNotOwner, "%s cannot transfer token %q", sender, tokenID)
		}
		if approvalID != nil && *approvalID != current {
			return errors.Wrapf(ErrStaleApproval, "want approval %d, got %d", current, *approvalID)
		}
	}
	if receiver == t.Owner {
		return errors.Wrap(errors.ErrInput, "the token owner and the receiver should be different")
	}
	if err := receiver.Validate(); err != nil {
		return errors.Wrap(err, "receiver")
	}

	previous := t.Owner
	t.Owner = receiver
	t.Approvals = nil
	if err := c.bucket.Save(db, t); err != nil {
		return err
	}

	keyvals := []interface{}{"token", tokenID, "old_owner", previous, "new_owner", receiver}
	if sender != previous {
		keyvals = append(keyvals, "authorized", sender)
	}
	if memo != "" {
		keyvals = append(keyvals, "memo", memo)
	}
	ledger.GetLogger(ctx).Info("nft transfer", keyvals...)
	return nil
}

// ownedToken returns the token if the signer is its owner.
func (c *Controller) ownedToken(db store.ReadOnlyKVStore, signer ledger.AccountID, tokenID string) (*Token, error) {
	t, err := c.bucket.Get(db, tokenID)
	if err != nil {
		return nil, err
	}
	if t.Owner != signer {
		return nil, errors.Wrapf(ErrNotOwner, "%s does not own token %q", signer, tokenID)
	}
	return t, nil
}

func withoutApproval(approvals []Approval, account ledger.AccountID) []Approval {
	var res []Approval
	for _, a := range approvals {
		if a.Account != account {
			res = append(res, a)
		}
	}
	return res
}
