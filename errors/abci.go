package errors

import (
	"fmt"
	"reflect"
)

const (
	// SuccessABCICode is the code of a transaction or query that did not
	// fail.
	SuccessABCICode = 0

	// Errors without a registered code are internal. Their message never
	// reaches the result outside of debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of a transaction result for given
// error.
//
// Registered errors report their code and message, so a client can tell
// a missing escrow (3) from a mint mismatch (1010). Unregistered errors
// and recovered panics keep their code but report a generic message. In
// debug mode the full message with stack trace is always returned.
func ABCIInfo(err error, debug bool) (uint32, string) {
	code := Code(err)
	switch {
	case code == SuccessABCICode:
		return code, ""
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	case code == ErrPanic.code:
		return code, ErrPanic.desc
	default:
		return code, err.Error()
	}
}

// Code returns the code of the first error in the chain of causes that
// declares one. Errors that declare none have the internal code 1.
func Code(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
	return SuccessABCICode
}

// Lookup returns the root error registered with given code, or nil if
// the code is unknown. It lets a client turn a result code back into an
// error that can be tested with Is.
func Lookup(code uint32) *Error {
	return usedCodes[code]
}

type coder interface {
	ABCICode() uint32
}

// errIsNil also treats a typed nil pointer as no error.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	val := reflect.ValueOf(err)
	return val.Kind() == reflect.Ptr && val.IsNil()
}
