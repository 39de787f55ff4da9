package ledger

import (
	"encoding/json"

	"github.com/iov-one/ledger/store"
)

// Handler is a core engine that can process a few specific messages
// This could represent "mint a token", or "transfer a token and pay out"
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a message.
// It is its own interface to allow better type controls.
// Check must not persist any state change.
type Checker interface {
	Check(ctx Context, db store.KVStore, msg Msg) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a message.
type Deliverer interface {
	Deliver(ctx Context, db store.KVStore, msg Msg) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality
// like logging, panic recovery or state rollback.
type Decorator interface {
	Check(ctx Context, db store.KVStore, msg Msg, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db store.KVStore, msg Msg, next Deliverer) (*DeliverResult, error)
}

// CheckResult captures any non-error information returned by a Checker.
type CheckResult struct {
	// Log is human-readable informational string
	Log string
}

// DeliverResult captures any non-error information returned by a Deliverer.
type DeliverResult struct {
	// Data is a machine-parseable return value, like the JSON encoded
	// result of the operation.
	Data []byte
	// Log is human-readable informational string
	Log string
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	// Handle registers a handler for the message type. The message path
	// is used for routing and the message instance is used as a prototype
	// when decoding incoming requests.
	Handle(m Msg, h Handler)
}

// QueryHandler is anything that can process ABCI queries. It receives the
// raw request data and returns the JSON encoded response.
type QueryHandler interface {
	Query(db store.ReadOnlyKVStore, data []byte) ([]byte, error)
}

// QueryRouter allows extensions to expose their queries under a path.
type QueryRouter interface {
	Register(path string, h QueryHandler)
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, store.KVStore) error
}
