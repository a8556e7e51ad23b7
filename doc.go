/*
Package barter defines the interfaces used throughout the escrow ledger:
storage, transactions, messages, handlers and the authorization primitives
(conditions and addresses).

The application is a deterministic state machine. Every transaction is
decoded into a single message, routed to one handler and executed against a
cache-wrapped KVStore, so a failing transaction never leaves a partial write
behind. Extensions live under x/ and only talk to each other through the
interfaces declared here.

We pass context through context.Context between app, middleware, and
handlers. There exist two functions for every XYZ of type T that we want to
support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting the value (eg. height, chain id).
*/
package barter
