/*
Package ledger defines the common interfaces that tie together the ledger
extensions, as well as implementations of the simplest shared components.

We pass context through context.Context between the application, the
handlers and the controllers. Information about the caller, such as the
signing account and the attached deposit, is stored in the context.

There should exist two functions for every XYZ of type T that we want to
support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value.
*/
package ledger
