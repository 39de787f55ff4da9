/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each extension stores its configuration under its own key. Configuration is
loaded from the genesis file once, when the ledger is initialized, and is
never modified afterwards.

Not being able to get a configuration value is a critical condition for the
application and there is no recovery path for the client.
*/
package gconf
