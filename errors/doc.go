/*
Package errors implements the error classification used by the ledger.

Every failure returned by a handler should wrap one of the root errors
declared with Register. The root error decides the ABCI code returned to the
client, while the wrapping layers add context. Extensions that need their own
class of failure register it once, during program initialization, using a
code from the range reserved for that extension.

Create errors at the point of failure using Wrap or ErrXyz.New so that a
stack trace is attached. Format an error with

	%s to get the message only
	%v to get the message and the [file:line] where it was created
	%+v to get the message and the full stack trace
*/
package errors
