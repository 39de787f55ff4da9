package payout

import (
	"encoding/json"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r ledger.Registry, coord *Coordinator) {
	r.Handle(&TransferPayoutMsg{}, TransferPayoutHandler{coord: coord})
}

// RegisterQuery will register the payout computation as "nft_payout".
func RegisterQuery(qr ledger.QueryRouter, calc *Calculator) {
	qr.Register(QueryPath, PayoutQueryHandler{calc: calc})
}

// PayoutQueryHandler returns the payout of a token without modifying the
// state.
type PayoutQueryHandler struct {
	calc *Calculator
}

var _ ledger.QueryHandler = PayoutQueryHandler{}

// Query expects a JSON encoded PayoutRequest and returns the JSON encoded
// Payout.
func (h PayoutQueryHandler) Query(db store.ReadOnlyKVStore, data []byte) ([]byte, error) {
	var req PayoutRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	payout, err := h.calc.Payout(db, req.TokenID, req.Balance, req.MaxLenPayout)
	if err != nil {
		return nil, err
	}
	return marshalPayout(payout)
}

// TransferPayoutHandler transfers a token and returns the JSON encoded
// payout as the result data.
type TransferPayoutHandler struct {
	coord *Coordinator
}

var _ ledger.Handler = TransferPayoutHandler{}

func (h TransferPayoutHandler) Check(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	if _, err := h.coord.calc.Payout(db, msg.TokenID, msg.Balance, msg.MaxLenPayout); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h TransferPayoutHandler) Deliver(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	payout, err := h.coord.TransferAndPayout(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	data, err := marshalPayout(payout)
	if err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: data}, nil
}

func (h TransferPayoutHandler) validate(ctx ledger.Context, m ledger.Msg) (*TransferPayoutMsg, error) {
	// Deposit is checked before anything else.
	if err := ledger.RequireOneYocto(ctx); err != nil {
		return nil, err
	}
	var msg TransferPayoutMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

func marshalPayout(p *Payout) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}
