/*
Package errors implements coded errors for barter.

Every failure reported to a client wraps one of the root errors declared in
this package, or a root error registered by an extension using
Register(code, description). The code is returned as the ABCI result code,
which allows clients to distinguish kinds of failures.

Wrap attaches a stacktrace the first time an error is wrapped. Use
fmt.Printf/Sprintf to get more context for the error

	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
