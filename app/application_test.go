package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/ledgertest/assert"
	"github.com/iov-one/ledger/store"
)

func newTestApp(t testing.TB, h ledger.Handler, init ledger.Initializer) (*Application, store.CacheableKVStore) {
	t.Helper()
	db := store.MemStore()
	router := NewRouter()
	router.Handle(&ledgertest.Msg{}, h)
	qr := NewQueryRouter()
	qr.Register("test/echo", echoQuery{})
	a := NewApplication("test", db, router, DefaultDecorators(), qr, init)
	return a, db
}

func TestApplicationDeliver(t *testing.T) {
	key, value := []byte("written"), []byte("value")

	cases := map[string]struct {
		Handler    *ledgertest.Handler
		Raw        string
		Path       string
		WantErr    *errors.Error
		WantWrites bool
	}{
		"success is written": {
			Handler:    &ledgertest.Handler{Key: key, Value: value},
			Path:       ledgertest.MsgPath,
			Raw:        `{"text": "hello"}`,
			WantWrites: true,
		},
		"failure is discarded": {
			Handler: &ledgertest.Handler{Key: key, Value: value, DeliverErr: errors.ErrUnauthorized},
			Path:    ledgertest.MsgPath,
			Raw:     `{"text": "hello"}`,
			WantErr: errors.ErrUnauthorized,
		},
		"panic is discarded": {
			Handler: &ledgertest.Handler{Key: key, Value: value, Panic: "boom"},
			Path:    ledgertest.MsgPath,
			Raw:     `{"text": "hello"}`,
			WantErr: errors.ErrPanic,
		},
		"unknown path": {
			Handler: &ledgertest.Handler{Key: key, Value: value},
			Path:    "unknown/msg",
			Raw:     `{"text": "hello"}`,
			WantErr: errors.ErrNotFound,
		},
		"malformed message": {
			Handler: &ledgertest.Handler{Key: key, Value: value},
			Path:    ledgertest.MsgPath,
			Raw:     `{"text": 1}`,
			WantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a, db := newTestApp(t, tc.Handler, nil)
			assert.Nil(t, a.InitChain(Genesis{ChainID: "test-chain"}))

			_, err := a.Deliver(context.Background(), tc.Path, []byte(tc.Raw))
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := db.Get(key)
			assert.Nil(t, err)
			if tc.WantWrites {
				assert.Equal(t, value, got)
			} else if got != nil {
				t.Fatalf("unexpected write: %q", got)
			}
		})
	}
}

func TestApplicationCheckDoesNotWrite(t *testing.T) {
	h := &ledgertest.Handler{Key: []byte("k"), Value: []byte("v")}
	a, db := newTestApp(t, h, nil)
	assert.Nil(t, a.InitChain(Genesis{ChainID: "test-chain"}))

	_, err := a.Check(context.Background(), ledgertest.MsgPath, []byte(`{}`))
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 0, h.DeliverCallCount())

	got, err := db.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestApplicationRequiresInitialization(t *testing.T) {
	h := &ledgertest.Handler{}
	a, _ := newTestApp(t, h, nil)

	_, err := a.Deliver(context.Background(), ledgertest.MsgPath, []byte(`{}`))
	assert.IsErr(t, errors.ErrState, err)
	_, err = a.ChainID()
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 0, h.CallCount())

	assert.Nil(t, a.InitChain(Genesis{ChainID: "test-chain"}))
	chainID, err := a.ChainID()
	assert.Nil(t, err)
	assert.Equal(t, "test-chain", chainID)

	// Chain can be initialized only once.
	assert.IsErr(t, errors.ErrImmutable, a.InitChain(Genesis{ChainID: "test-chain"}))
}

func TestApplicationInitChainIsAtomic(t *testing.T) {
	failing := initializerFunc(func(opts ledger.Options, db store.KVStore) error {
		if err := db.Set([]byte("genesis"), []byte("partial")); err != nil {
			return err
		}
		return errors.Wrap(errors.ErrInput, "broken genesis")
	})
	a, db := newTestApp(t, &ledgertest.Handler{}, failing)

	err := a.InitChain(Genesis{ChainID: "test-chain"})
	assert.IsErr(t, errors.ErrInput, err)

	for _, k := range []string{"genesis", chainIDKey} {
		got, err := db.Get([]byte(k))
		assert.Nil(t, err)
		assert.Nil(t, got)
	}

	assert.IsErr(t, errors.ErrInput, a.InitChain(Genesis{ChainID: "x"}))
}

func TestApplicationQuery(t *testing.T) {
	a, _ := newTestApp(t, &ledgertest.Handler{}, nil)

	res, err := a.Query("test/echo", []byte(`{"a":1}`))
	assert.Nil(t, err)
	assert.Equal(t, `{"a":1}`, string(res))

	_, err = a.Query("test/unknown", nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestApplicationSetsContext(t *testing.T) {
	var got ledger.Context
	h := handlerFunc(func(ctx ledger.Context, db store.KVStore, msg ledger.Msg) (*ledger.DeliverResult, error) {
		got = ctx
		return &ledger.DeliverResult{Data: []byte("ok")}, nil
	})
	a, _ := newTestApp(t, h, nil)
	assert.Nil(t, a.InitChain(Genesis{ChainID: "test-chain"}))

	ctx := ledgertest.Ctx("alice", 1)
	res, err := a.Deliver(ctx, ledgertest.MsgPath, []byte(`{"text": "hi"}`))
	assert.Nil(t, err)
	assert.Equal(t, []byte("ok"), res.Data)

	assert.Equal(t, "test-chain", ledger.GetChainID(got))
	signer, ok := ledger.GetSigner(got)
	assert.Equal(t, true, ok)
	assert.Equal(t, ledger.AccountID("alice"), signer)
	assert.Nil(t, ledger.RequireOneYocto(got))
}

type echoQuery struct{}

func (echoQuery) Query(db store.ReadOnlyKVStore, data []byte) ([]byte, error) {
	var v json.RawMessage
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return v, nil
}

type initializerFunc func(ledger.Options, store.KVStore) error

func (fn initializerFunc) FromGenesis(opts ledger.Options, db store.KVStore) error {
	return fn(opts, db)
}

// handlerFunc is a handler that accepts all checks.
type handlerFunc func(ledger.Context, store.KVStore, ledger.Msg) (*ledger.DeliverResult, error)

func (fn handlerFunc) Check(ctx ledger.Context, db store.KVStore, msg ledger.Msg) (*ledger.CheckResult, error) {
	return &ledger.CheckResult{}, nil
}

func (fn handlerFunc) Deliver(ctx ledger.Context, db store.KVStore, msg ledger.Msg) (*ledger.DeliverResult, error) {
	return fn(ctx, db, msg)
}
