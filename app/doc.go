/*
Package app contains the pieces that turn a set of extensions into a
runnable ledger application: routing of messages and queries, decorator
chains, genesis handling and the Application that executes messages
against a store.

Every delivered message is executed on a cache wrap of the store. The
changes are written only when the handler succeeds, so a failing or
panicking message leaves no trace in the state.
*/
package app
