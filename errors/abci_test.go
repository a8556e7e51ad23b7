package errors

import (
	"io"
	"strings"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	// log is the result outside of debug mode. debugLog is a prefix of
	// the debug result, which may carry a stack trace.
	cases := []struct {
		name     string
		err      error
		code     uint32
		log      string
		debugLog string
	}{
		{name: "nil", err: nil},
		{name: "typed nil", err: (*Error)(nil)},
		{
			name:     "registered",
			err:      ErrNotFound,
			code:     ErrNotFound.code,
			log:      "not found",
			debugLog: "not found",
		},
		{
			name:     "registered wrapped twice",
			err:      Wrap(Wrap(ErrNotFound, "escrow 4"), "take"),
			code:     ErrNotFound.code,
			log:      "take: escrow 4: not found",
			debugLog: "take: escrow 4: not found",
		},
		{
			name:     "stdlib hides its message",
			err:      io.EOF,
			code:     1,
			log:      "internal error",
			debugLog: "EOF",
		},
		{
			name:     "wrapped stdlib hides the whole message",
			err:      Wrap(io.EOF, "read vault"),
			code:     1,
			log:      "internal error",
			debugLog: "read vault: EOF",
		},
		{
			name:     "custom coder",
			err:      customErr{},
			code:     999,
			log:      "custom",
			debugLog: "custom",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, false)
			if code != tc.code || log != tc.log {
				t.Errorf("want %d %q, got %d %q", tc.code, tc.log, code, log)
			}
			code, log = ABCIInfo(tc.err, true)
			if code != tc.code {
				t.Errorf("debug: want code %d, got %d", tc.code, code)
			}
			if log != tc.debugLog && !strings.HasPrefix(log, tc.debugLog+"\n") {
				t.Errorf("debug: want %q, got %q", tc.debugLog, log)
			}
		})
	}
}

func TestABCIInfoPanic(t *testing.T) {
	err := Wrap(ErrPanic, "runtime error: index out of range")

	code, log := ABCIInfo(err, false)
	if code != ErrPanic.code || log != "panic" {
		t.Fatalf("panic details leaked: %d %q", code, log)
	}

	_, log = ABCIInfo(err, true)
	if !strings.HasPrefix(log, "runtime error: index out of range: panic") {
		t.Fatalf("debug mode must keep the message, got %q", log)
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil":                {err: nil, want: SuccessABCICode},
		"typed nil":          {err: (*Error)(nil), want: SuccessABCICode},
		"root":               {err: ErrInsufficientAmount, want: 12},
		"wrapped twice":      {err: Wrapf(Wrap(ErrDuplicate, "escrow"), "seed %d", 7), want: 6},
		"stdlib":             {err: io.ErrUnexpectedEOF, want: 1},
		"wrapped stdlib":     {err: Wrap(io.EOF, "vault"), want: 1},
		"custom implementer": {err: customErr{}, want: 999},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	res := Lookup(ErrAmount.ABCICode())
	if !ErrAmount.Is(res) {
		t.Fatalf("want amount error, got %v", res)
	}
	if res := Lookup(1); res != nil {
		t.Fatalf("internal code must not resolve, got %v", res)
	}
	if res := Lookup(424242); res != nil {
		t.Fatalf("unknown code resolved to %v", res)
	}
}

// customErr is a custom implementation of an error that provides an ABCICode
// method.
type customErr struct{}

func (customErr) ABCICode() uint32 { return 999 }

func (customErr) Error() string { return "custom" }
