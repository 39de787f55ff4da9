package nft

import (
	"encoding/json"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r ledger.Registry, ctrl *Controller) {
	r.Handle(&MintMsg{}, MintHandler{ctrl: ctrl})
	r.Handle(&TransferMsg{}, TransferHandler{ctrl: ctrl})
	r.Handle(&ApproveMsg{}, ApproveHandler{ctrl: ctrl})
	r.Handle(&RevokeMsg{}, RevokeHandler{ctrl: ctrl})
}

// RegisterQuery will register the token lookup as "nft/token" and the
// collection metadata as "nft/metadata".
func RegisterQuery(qr ledger.QueryRouter, ctrl *Controller) {
	qr.Register("nft/token", TokenQueryHandler{ctrl: ctrl})
	qr.Register("nft/metadata", MetadataQueryHandler{})
}

// MintHandler creates new tokens.
type MintHandler struct {
	ctrl *Controller
}

var _ ledger.Handler = MintHandler{}

func (h MintHandler) Check(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, m); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h MintHandler) Deliver(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, m)
	if err != nil {
		return nil, err
	}
	t, err := h.ctrl.Mint(db, msg.TokenID, owner, msg.Metadata)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &ledger.DeliverResult{Data: data}, nil
}

func (h MintHandler) validate(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*MintMsg, ledger.AccountID, error) {
	var msg MintMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, "", errors.Wrap(err, "load msg")
	}
	signer, err := ledger.RequireSigner(ctx)
	if err != nil {
		return nil, "", err
	}
	owner := msg.OwnerID
	if owner == "" {
		owner = signer
	}
	return &msg, owner, nil
}

// TransferHandler moves tokens between accounts. Exactly one smallest unit
// must be attached to the message.
type TransferHandler struct {
	ctrl *Controller
}

var _ ledger.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, m); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(ctx, db, signer, msg.ReceiverID, msg.TokenID, msg.ApprovalID, msg.Memo); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx ledger.Context, m ledger.Msg) (*TransferMsg, ledger.AccountID, error) {
	if err := ledger.RequireOneYocto(ctx); err != nil {
		return nil, "", err
	}
	var msg TransferMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, "", errors.Wrap(err, "load msg")
	}
	signer, err := ledger.RequireSigner(ctx)
	if err != nil {
		return nil, "", err
	}
	return &msg, signer, nil
}

// ApproveHandler grants transfer approvals. The approval ID is returned as
// the result data.
type ApproveHandler struct {
	ctrl *Controller
}

var _ ledger.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, m); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Approve(db, signer, msg.TokenID, msg.AccountID)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(Approval{Account: msg.AccountID, ApprovalID: id})
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &ledger.DeliverResult{Data: data}, nil
}

func (h ApproveHandler) validate(ctx ledger.Context, m ledger.Msg) (*ApproveMsg, ledger.AccountID, error) {
	var msg ApproveMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, "", errors.Wrap(err, "load msg")
	}
	signer, err := ledger.RequireSigner(ctx)
	if err != nil {
		return nil, "", err
	}
	return &msg, signer, nil
}

// RevokeHandler removes transfer approvals.
type RevokeHandler struct {
	ctrl *Controller
}

var _ ledger.Handler = RevokeHandler{}

func (h RevokeHandler) Check(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, m); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

func (h RevokeHandler) Deliver(ctx ledger.Context, db store.KVStore, m ledger.Msg) (*ledger.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, m)
	if err != nil {
		return nil, err
	}
	if msg.AccountID == "" {
		err = h.ctrl.RevokeAll(db, signer, msg.TokenID)
	} else {
		err = h.ctrl.Revoke(db, signer, msg.TokenID, msg.AccountID)
	}
	if err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

func (h RevokeHandler) validate(ctx ledger.Context, m ledger.Msg) (*RevokeMsg, ledger.AccountID, error) {
	if err := ledger.RequireOneYocto(ctx); err != nil {
		return nil, "", err
	}
	var msg RevokeMsg
	if err := ledger.LoadMsg(m, &msg); err != nil {
		return nil, "", errors.Wrap(err, "load msg")
	}
	signer, err := ledger.RequireSigner(ctx)
	if err != nil {
		return nil, "", err
	}
	return &msg, signer, nil
}

// TokenQueryHandler returns the ownership record of a token.
type TokenQueryHandler struct {
	ctrl *Controller
}

var _ ledger.QueryHandler = TokenQueryHandler{}

// Query expects {"token_id": "..."} and returns the JSON encoded token.
func (h TokenQueryHandler) Query(db store.ReadOnlyKVStore, data []byte) ([]byte, error) {
	var req struct {
		TokenID string `json:"token_id"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ValidateTokenID(req.TokenID); err != nil {
		return nil, err
	}
	t, err := h.ctrl.Token(db, req.TokenID)
	if err != nil {
		return nil, err
	}
	res, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return res, nil
}

// MetadataQueryHandler returns the collection metadata. The request body is
// ignored.
type MetadataQueryHandler struct{}

var _ ledger.QueryHandler = MetadataQueryHandler{}

func (MetadataQueryHandler) Query(db store.ReadOnlyKVStore, data []byte) ([]byte, error) {
	m, err := LoadContractMetadata(db)
	if err != nil {
		return nil, err
	}
	res, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return res, nil
}
