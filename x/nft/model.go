package nft

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

const maxTokenIDLen = 256

var cdc = amino.NewCodec()

// Approval grants an account the right to transfer a token.
type Approval struct {
	Account    ledger.AccountID `json:"account_id"`
	ApprovalID uint64           `json:"approval_id"`
}

// Token is the ownership record of a single non-fungible token.
type Token struct {
	ID    string           `json:"token_id"`
	Owner ledger.AccountID `json:"owner_id"`
	// Approvals are ordered by the time they were granted.
	Approvals []Approval `json:"approved_account_ids,omitempty"`
	// NextApprovalID is the ID that the next granted approval receives.
	NextApprovalID uint64        `json:"next_approval_id"`
	Metadata       TokenMetadata `json:"metadata"`
}

// ValidateTokenID returns an error if given value cannot be used as a token
// ID.
func ValidateTokenID(id string) error {
	if id == "" {
		return errors.Wrap(errors.ErrEmpty, "token id")
	}
	if len(id) > maxTokenIDLen {
		return errors.Wrapf(errors.ErrInput, "token id must not be longer than %d characters", maxTokenIDLen)
	}
	return nil
}

// Validate returns an error if the token state is not consistent.
func (t *Token) Validate() error {
	if err := ValidateTokenID(t.ID); err != nil {
		return errors.Wrap(err, "id")
	}
	if err := t.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := t.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	seen := make(map[ledger.AccountID]struct{}, len(t.Approvals))
	for i, a := range t.Approvals {
		if err := a.Account.Validate(); err != nil {
			return errors.Wrapf(err, "approval %d", i)
		}
		if a.Account == t.Owner {
			return errors.Wrapf(errors.ErrModel, "approval %d: owner cannot be approved", i)
		}
		if _, ok := seen[a.Account]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "approval %d: %s", i, a.Account)
		}
		seen[a.Account] = struct{}{}
		if a.ApprovalID >= t.NextApprovalID {
			return errors.Wrapf(errors.ErrModel, "approval %d: id %d not issued", i, a.ApprovalID)
		}
	}
	return nil
}

// ApprovalOf returns the approval ID of given account and true if the
// account is approved to transfer the token.
func (t *Token) ApprovalOf(account ledger.AccountID) (uint64, bool) {
	for _, a := range t.Approvals {
		if a.Account == account {
			return a.ApprovalID, true
		}
	}
	return 0, false
}

// Copy returns a deep copy of the token.
func (t *Token) Copy() *Token {
	c := *t
	if t.Approvals != nil {
		c.Approvals = make([]Approval, len(t.Approvals))
		copy(c.Approvals, t.Approvals)
	}
	return &c
}

// Marshal serializes the token using the binary codec.
func (t *Token) Marshal() ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrModel, err.Error())
	}
	return raw, nil
}

// Unmarshal loads the token state from its binary representation.
func (t *Token) Unmarshal(raw []byte) error {
	if err := cdc.UnmarshalBinaryBare(raw, t); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}
