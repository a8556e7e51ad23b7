package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes are part of the client
// protocol and never change.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")
	// ErrMsg is an invalid message or a message without a route.
	ErrMsg = Register(4, "invalid message")
	// ErrModel is a value that cannot be stored.
	ErrModel     = Register(5, "invalid model")
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman is a code path that correct wiring never reaches.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	// ErrInsufficientAmount is a balance too small for a transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")
	ErrAmount             = Register(13, "invalid amount")
	ErrInput              = Register(14, "invalid input")
	ErrExpired            = Register(15, "expired")
	ErrOverflow           = Register(16, "an operation cannot be completed due to value overflow")
	ErrCurrency           = Register(17, "currency")
	ErrDatabase           = Register(18, "database")
	ErrMetadata           = Register(19, "invalid metadata")

	// ErrPanic marks a recovered panic. Its details are only reported in
	// debug mode.
	ErrPanic = Register(111222, "panic")
)

// usedCodes maps every registered code to its root error. Code 1 is
// reserved for errors without a code.
var usedCodes = map[uint32]*Error{1: nil}

// Register declares a root error with a code unique across the
// application. It panics on a code already in use, so call it from
// package level variables only.
func Register(code uint32, description string) *Error {
	if _, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered", code))
	}
	e := &Error{code: code, desc: description}
	usedCodes[code] = e
	return e
}

// Error is a root error. Errors returned at runtime wrap one of them, so
// that callers test them with Is and clients receive their code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

func (e Error) ABCICode() uint32 { return e.code }

// Is reports whether err is e or wraps e. A nil root matches any nil
// error, including a typed nil.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap prefixes err with description and keeps err as the cause. The
// innermost Wrap records a stack trace. Wrap of nil is nil, so the result
// of a call can be wrapped in the return statement.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the name of the type of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// Recover turns a panic into ErrPanic. It must be deferred.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string { return e.msg + ": " + e.parent.Error() }

func (e *wrappedError) Cause() error { return e.parent }

func (e *wrappedError) Unwrap() error { return e.parent }

// Format supports three verbs:
//
//	%s   the message
//	%v   the message and [file:line] of where the error was created
//	%+v  the message and the full stack trace
func (e *wrappedError) Format(s fmt.State, verb rune) {
	io.WriteString(s, e.Error())
	if verb != 'v' {
		return
	}
	st := stackTrace(e)
	if s.Flag('+') {
		if st != nil {
			fmt.Fprintf(s, "%+v", st)
		}
		return
	}
	if f, ok := creationFrame(st); ok {
		fmt.Fprintf(s, " [%s:%d]", f, f)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the outermost stack trace in the chain of causes.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// creationFrame skips the frames of the wrapping helpers.
func creationFrame(st errors.StackTrace) (errors.Frame, bool) {
	for _, f := range st {
		fn := strings.SplitN(fmt.Sprintf("%+s", f), "\n", 2)[0]
		switch fn {
		case "github.com/iov-one/barter/errors.Wrap",
			"github.com/iov-one/barter/errors.Wrapf",
			"github.com/iov-one/barter/errors.WithType":
			continue
		}
		return f, true
	}
	return 0, false
}
