package app

import (
	"context"
	"testing"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/ledgertest"
	"github.com/iov-one/ledger/store"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &countingDecorator{}
	c2 := &countingDecorator{}
	c3 := &countingDecorator{}
	h := &ledgertest.Handler{}

	stack := ChainDecorators(
		c1,
		NewLogging(),
		NewRecovery(),
		c2,
		panicDecorator{},
		c3,
	).WithHandler(h)

	bg := context.Background()
	msg := &ledgertest.Msg{}

	// make some calls, make sure it is fine
	_, err := stack.Check(bg, nil, msg)
	assert.NoError(t, err)
	_, err = stack.Deliver(bg, nil, msg)
	assert.NoError(t, err)

	// decorators are counted double, once in, once out
	assert.Equal(t, 4, c1.count)
	assert.Equal(t, 4, c2.count)
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 2, h.CallCount())

	// now, let's trigger a panic
	panicMsg := &ledgertest.Msg{Text: "panic"}
	_, err = stack.Check(bg, nil, panicMsg)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(bg, nil, panicMsg)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 8, c1.count)
	// note that c2 is called twice in, but not out
	assert.Equal(t, 6, c2.count)
	// and those two ins don't make it to c3 due to panic
	assert.Equal(t, 4, c3.count)
	assert.Equal(t, 2, h.CallCount())
}

func TestChainSkipsNil(t *testing.T) {
	var nilDecorator *countingDecorator
	h := &ledgertest.Handler{}
	stack := ChainDecorators(nil, nilDecorator, NewRecovery()).WithHandler(h)

	_, err := stack.Deliver(context.Background(), nil, &ledgertest.Msg{})
	assert.NoError(t, err)
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    ledger.Decorator
		handler *ledgertest.Handler
		check   bool
		wantErr *errors.Error
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled, returns error, both written": {
			save:    NewSavepoint(),
			handler: &ledgertest.Handler{Key: nk, Value: nv, DeliverErr: errors.ErrInput},
			wantErr: errors.ErrInput,
			written: [][]byte{ok, nk},
		},
		"savepoint for deliver, returns error, one written": {
			save:    NewSavepoint().OnDeliver(),
			handler: &ledgertest.Handler{Key: nk, Value: nv, DeliverErr: errors.ErrInput},
			wantErr: errors.ErrInput,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint for check does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &ledgertest.Handler{Key: nk, Value: nv, DeliverErr: errors.ErrInput},
			wantErr: errors.ErrInput,
			written: [][]byte{ok, nk},
		},
		"success is written": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &ledgertest.Handler{Key: nk, Value: nv},
			written: [][]byte{ok, nk},
		},
		"check error": {
			save:    NewSavepoint().OnCheck(),
			handler: &ledgertest.Handler{CheckErr: errors.ErrState},
			check:   true,
			wantErr: errors.ErrState,
			written: [][]byte{ok},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.NoError(t, db.Set(ok, ov))

			stack := ChainDecorators(tc.save).WithHandler(tc.handler)
			var err error
			if tc.check {
				_, err = stack.Check(context.Background(), db, &ledgertest.Msg{})
			} else {
				_, err = stack.Deliver(context.Background(), db, &ledgertest.Msg{})
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			for _, k := range tc.written {
				has, err := db.Has(k)
				assert.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := db.Has(k)
				assert.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

// countingDecorator counts every call, once on the way in and once on
// the way out.
type countingDecorator struct {
	count int
}

var _ ledger.Decorator = (*countingDecorator)(nil)

func (c *countingDecorator) Check(ctx ledger.Context, db store.KVStore, msg ledger.Msg, next ledger.Checker) (*ledger.CheckResult, error) {
	c.count++
	res, err := next.Check(ctx, db, msg)
	c.count++
	return res, err
}

func (c *countingDecorator) Deliver(ctx ledger.Context, db store.KVStore, msg ledger.Msg, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	c.count++
	res, err := next.Deliver(ctx, db, msg)
	c.count++
	return res, err
}

// panicDecorator panics when the message text is "panic".
type panicDecorator struct{}

func (panicDecorator) Check(ctx ledger.Context, db store.KVStore, msg ledger.Msg, next ledger.Checker) (*ledger.CheckResult, error) {
	if m, ok := msg.(*ledgertest.Msg); ok && m.Text == "panic" {
		panic("check panic")
	}
	return next.Check(ctx, db, msg)
}

func (panicDecorator) Deliver(ctx ledger.Context, db store.KVStore, msg ledger.Msg, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	if m, ok := msg.(*ledgertest.Msg); ok && m.Text == "panic" {
		panic("deliver panic")
	}
	return next.Deliver(ctx, db, msg)
}
