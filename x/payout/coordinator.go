package payout

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// Transferer moves a token to a new owner.
type Transferer interface {
	Transfer(
		ctx ledger.Context,
		db store.KVStore,
		sender, receiver ledger.AccountID,
		tokenID string,
		approvalID *uint64,
		memo string,
	) error
}

// Coordinator bundles the payout computation with the token transfer.
type Coordinator struct {
	calc  *Calculator
	token Transferer
}

// NewCoordinator returns a coordinator computing payouts with given
// calculator and transferring tokens with given transferer.
func NewCoordinator(calc *Calculator, token Transferer) *Coordinator {
	return &Coordinator{calc: calc, token: token}
}

// TransferAndPayout computes the payout for the current owner of the token
// and then transfers the token from the signer to the receiver. Exactly one
// smallest unit must be attached to the message.
//
// The payout is computed from the state before the transfer. If the
// transfer fails, no payout is returned and the failure is reported as
// ErrTransferRejected with the transfer error as the cause.
func (c *Coordinator) TransferAndPayout(ctx ledger.Context, db store.KVStore, msg *TransferPayoutMsg) (*Payout, error) {
	if err := ledger.RequireOneYocto(ctx); err != nil {
		return nil, err
	}
	signer, err := ledger.RequireSigner(ctx)
	if err != nil {
		return nil, err
	}

	payout, err := c.calc.Payout(db, msg.TokenID, msg.Balance, msg.MaxLenPayout)
	if err != nil {
		return nil, err
	}

	if err := c.token.Transfer(ctx, db, signer, msg.ReceiverID, msg.TokenID, msg.ApprovalID, msg.Memo); err != nil {
		return nil, errors.Wrapf(errors.WithKind(ErrTransferRejected, err), "token %q", msg.TokenID)
	}

	ledger.GetLogger(ctx).Debug("payout",
		"token", msg.TokenID,
		"balance", msg.Balance,
		"entries", len(payout.Payout))
	return payout, nil
}
