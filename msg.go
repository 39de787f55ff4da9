package ledger

import (
	"reflect"

	"github.com/iov-one/ledger/errors"
)

// Msg is message for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. Information about who is sending the message is carried by the
// context.
type Msg interface {
	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to
	// them.
	//
	// Must be alphanumeric [0-9A-Za-z_/\-]+
	Path() string

	// Validate performs a sanity check of the message fields. It does
	// not have access to the state.
	Validate() error
}

// LoadMsg copies the content of a message into given destination, if both
// are of the same type. Loaded message is validated.
//
// Use this function in handlers to get the concrete message type:
//   var msg TransferMsg
//   if err := ledger.LoadMsg(m, &msg); err != nil {
func LoadMsg(m Msg, destination interface{}) error {
	if m == nil {
		return errors.Wrap(errors.ErrMsg, "nil message")
	}
	src := reflect.ValueOf(m)
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination must be a pointer, got %T", destination)
	}
	if src.Kind() == reflect.Ptr {
		if src.IsNil() {
			return errors.Wrap(errors.ErrMsg, "nil message")
		}
		src = src.Elem()
	}
	if src.Type() != dst.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", dst.Elem().Type(), m)
	}
	dst.Elem().Set(src)

	if v, ok := destination.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return errors.Wrap(err, "invalid message")
		}
	}
	return nil
}
