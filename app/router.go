package app

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/store"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/\-]+$`).MatchString

// Router allows us to register many handlers with different paths and
// route each message to the proper handler. It also knows how to decode a
// raw message for each registered path.
type Router struct {
	routes map[string]route
}

type route struct {
	msgType reflect.Type
	handler ledger.Handler
}

var _ ledger.Registry = (*Router)(nil)
var _ ledger.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]route),
	}
}

// Handle adds a new Handler for the given message path. Given message is
// used as the prototype when decoding raw messages.
//
// Registering two handlers under the same path panics.
func (r *Router) Handle(m ledger.Msg, h ledger.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	t := reflect.TypeOf(m)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	r.routes[path] = route{msgType: t, handler: h}
}

// Decode returns the message registered under given path, loaded from its
// JSON representation.
func (r *Router) Decode(path string, raw []byte) (ledger.Msg, error) {
	rt, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
	}
	msg, ok := reflect.New(rt.msgType).Interface().(ledger.Msg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "%s is not a message", rt.msgType)
	}
	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "decode %s: %s", path, err)
	}
	return msg, nil
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx ledger.Context, db store.KVStore, msg ledger.Msg) (*ledger.CheckResult, error) {
	h, err := r.handler(msg)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, msg)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx ledger.Context, db store.KVStore, msg ledger.Msg) (*ledger.DeliverResult, error) {
	h, err := r.handler(msg)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, msg)
}

func (r *Router) handler(m ledger.Msg) (ledger.Handler, error) {
	path := m.Path()
	rt, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
	}
	return rt.handler, nil
}

// QueryRouter dispatches queries to handlers registered under a path.
type QueryRouter struct {
	routes map[string]ledger.QueryHandler
}

var _ ledger.QueryRouter = (*QueryRouter)(nil)

// NewQueryRouter returns a new empty query router.
func NewQueryRouter() *QueryRouter {
	return &QueryRouter{
		routes: make(map[string]ledger.QueryHandler),
	}
}

// Register adds a new query handler. Registering two handlers under the
// same path panics.
func (qr *QueryRouter) Register(path string, h ledger.QueryHandler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := qr.routes[path]; ok {
		panic(fmt.Sprintf("re-registering query path: %s", path))
	}
	qr.routes[path] = h
}

// Handler returns the query handler registered under given path.
func (qr *QueryRouter) Handler(path string) (ledger.QueryHandler, error) {
	h, ok := qr.routes[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for path %q", path)
	}
	return h, nil
}
