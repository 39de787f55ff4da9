package ledgertest

import (
	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/store"
)

// Handler is a mock implementation of a ledger handler. It writes given
// key/value pair, if provided, before returning configured result.
type Handler struct {
	checkCall   int
	CheckResult ledger.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult ledger.DeliverResult
	DeliverErr    error

	// Key and Value, if set, are written to the store on every delivery,
	// before the result is returned.
	Key   []byte
	Value []byte
	// Panic, if set, is raised during the delivery.
	Panic interface{}
}

var _ ledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx ledger.Context, db store.KVStore, msg ledger.Msg) (*ledger.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx ledger.Context, db store.KVStore, msg ledger.Msg) (*ledger.DeliverResult, error) {
	h.deliverCall++
	if h.Key != nil {
		if err := db.Set(h.Key, h.Value); err != nil {
			return nil, err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// MsgPath is the path of Msg.
const MsgPath = "test/msg"

// Msg is a message that can be used to test routing.
type Msg struct {
	Text string `json:"text"`
	// Err is returned by Validate.
	Err error `json:"-"`
}

var _ ledger.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return MsgPath
}

func (m *Msg) Validate() error {
	return m.Err
}
