package nft

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
)

const (
	pathMintMsg     = "nft/mint"
	pathTransferMsg = "nft/transfer"
	pathApproveMsg  = "nft/approve"
	pathRevokeMsg   = "nft/revoke"
)

var _ ledger.Msg = (*MintMsg)(nil)

// MintMsg creates a new token. When owner is not provided, the signer
// becomes the owner.
type MintMsg struct {
	TokenID  string           `json:"token_id"`
	OwnerID  ledger.AccountID `json:"owner_id,omitempty"`
	Metadata TokenMetadata    `json:"token_metadata"`
}

func (MintMsg) Path() string {
	return pathMintMsg
}

func (m *MintMsg) Validate() error {
	if err := ValidateTokenID(m.TokenID); err != nil {
		return err
	}
	if m.OwnerID != "" {
		if err := m.OwnerID.Validate(); err != nil {
			return errors.Wrap(err, "owner_id")
		}
	}
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "token_metadata")
	}
	return nil
}

var _ ledger.Msg = (*TransferMsg)(nil)

// TransferMsg moves a token to the receiver.
type TransferMsg struct {
	ReceiverID ledger.AccountID `json:"receiver_id"`
	TokenID    string           `json:"token_id"`
	ApprovalID *uint64          `json:"approval_id,omitempty"`
	Memo       string           `json:"memo,omitempty"`
}

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	if err := ValidateTokenID(m.TokenID); err != nil {
		return err
	}
	if err := m.ReceiverID.Validate(); err != nil {
		return errors.Wrap(err, "receiver_id")
	}
	return nil
}

var _ ledger.Msg = (*ApproveMsg)(nil)

// ApproveMsg grants an account the right to transfer a token.
type ApproveMsg struct {
	TokenID   string           `json:"token_id"`
	AccountID ledger.AccountID `json:"account_id"`
}

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	if err := ValidateTokenID(m.TokenID); err != nil {
		return err
	}
	if err := m.AccountID.Validate(); err != nil {
		return errors.Wrap(err, "account_id")
	}
	return nil
}

var _ ledger.Msg = (*RevokeMsg)(nil)

// RevokeMsg removes an approval. When account is not provided, all
// approvals of the token are removed.
type RevokeMsg struct {
	TokenID   string           `json:"token_id"`
	AccountID ledger.AccountID `json:"account_id,omitempty"`
}

func (RevokeMsg) Path() string {
	return pathRevokeMsg
}

func (m *RevokeMsg) Validate() error {
	if err := ValidateTokenID(m.TokenID); err != nil {
		return err
	}
	if m.AccountID != "" {
		if err := m.AccountID.Validate(); err != nil {
			return errors.Wrap(err, "account_id")
		}
	}
	return nil
}
