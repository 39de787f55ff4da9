package payout

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/coin"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/nft"
)

const (
	// QueryPath is the path of the payout query.
	QueryPath = "nft_payout"

	pathTransferPayoutMsg = "nft_transfer_payout"
)

// PayoutRequest is the payload of the payout query.
type PayoutRequest struct {
	TokenID      string      `json:"token_id"`
	Balance      coin.Amount `json:"balance"`
	MaxLenPayout *uint32     `json:"max_len_payout,omitempty"`
}

func (r *PayoutRequest) Validate() error {
	if err := nft.ValidateTokenID(r.TokenID); err != nil {
		return errors.Wrap(err, "token_id")
	}
	if err := r.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	return nil
}

var _ ledger.Msg = (*TransferPayoutMsg)(nil)

// TransferPayoutMsg transfers a token and returns the payout computed for
// the owner before the transfer.
type TransferPayoutMsg struct {
	ReceiverID   ledger.AccountID `json:"receiver_id"`
	TokenID      string           `json:"token_id"`
	ApprovalID   *uint64          `json:"approval_id,omitempty"`
	Memo         string           `json:"memo,omitempty"`
	Balance      coin.Amount      `json:"balance"`
	MaxLenPayout *uint32          `json:"max_len_payout,omitempty"`
}

func (TransferPayoutMsg) Path() string {
	return pathTransferPayoutMsg
}

func (m *TransferPayoutMsg) Validate() error {
	if err := nft.ValidateTokenID(m.TokenID); err != nil {
		return errors.Wrap(err, "token_id")
	}
	if err := m.ReceiverID.Validate(); err != nil {
		return errors.Wrap(err, "receiver_id")
	}
	if err := m.Balance.Validate(); err != nil {
		return errors.Wrap(err, "balance")
	}
	return nil
}
