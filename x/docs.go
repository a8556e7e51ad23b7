/*
Package x contains the extensions the barter application is built from.

Extensions implement common functionality (Handler, Decorator,
Authenticator, etc.) and are combined together in the app package to
construct the application. Each sub-package owns its models, messages and
handlers:

	cash    - asset balances and the transfer primitive
	escrow  - two-party escrow with a derived vault authority
	sigs    - signature verification and replay protection
	utils   - savepoint, recovery, logging and metrics decorators

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `escrow.MakeMsg` in place of `escrow.MakeEscrowMsg`.
*/
package x
