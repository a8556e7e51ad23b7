package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestIsFollowsCause(t *testing.T) {
	std := stdlib.New("disk full")
	wrappedStd := Wrap(std, "save vault")
	if errors.Cause(wrappedStd) != std {
		t.Fatal("cause of a wrapped stdlib error must be the stdlib error")
	}

	var typedNil *customError
	cases := []struct {
		name string
		root *Error
		err  error
		want bool
	}{
		{"same instance", ErrNotFound, ErrNotFound, true},
		{"wrapped by us", ErrNotFound, Wrapf(ErrNotFound, "escrow %d", 2), true},
		{"wrapped by pkg/errors", ErrNotFound, errors.Wrap(ErrNotFound, "gone"), true},
		{"other code", ErrNotFound, ErrModel, false},
		{"other code wrapped", ErrNotFound, Wrap(ErrOverflow, "too big"), false},
		{"stdlib", ErrNotFound, std, false},
		{"wrapped stdlib", ErrNotFound, wrappedStd, false},
		{"nil root and nil", nil, nil, true},
		{"nil root and typed nil", nil, typedNil, true},
		{"nil root and error", nil, ErrNotFound, false},
		{"root and nil", ErrNotFound, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.root.Is(tc.err); got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

type customError struct{}

func (customError) Error() string { return "custom error" }

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestRegisterDuplicateCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("registering a used code must panic")
		}
	}()
	Register(ErrNotFound.code, "another not found")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
	if got, want := err.Error(), "boom: panic"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestWithType(t *testing.T) {
	err := WithType(ErrType, customError{})
	if !ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}
	if got, want := err.Error(), "errors.customError: invalid type"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestFormat(t *testing.T) {
	// Each error is created on its own line of this file.
	missing := Wrapf(ErrNotFound, "escrow %d", 7)
	short := Wrap(stdlib.New("short read"), "vault")
	twice := Wrap(Wrap(ErrInsufficientAmount, "deposit"), "make")

	cases := map[string]struct {
		err     error
		wantMsg string
	}{
		"registered error":   {err: missing, wantMsg: "escrow 7: not found"},
		"stdlib error":       {err: short, wantMsg: "vault: short read"},
		"wrapped two levels": {err: twice, wantMsg: "make: deposit: insufficient amount"},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := fmt.Sprintf("%s", tc.err); got != tc.wantMsg {
				t.Fatalf("%%s: want %q, got %q", tc.wantMsg, got)
			}

			// One line, pointing at where the error was created and
			// not at the wrapping helpers.
			line := fmt.Sprintf("%v", tc.err)
			if !strings.HasPrefix(line, tc.wantMsg+" [errors_test.go:") || strings.Contains(line, "\n") {
				t.Fatalf("%%v: %q", line)
			}

			full := fmt.Sprintf("%+v", tc.err)
			if !strings.HasPrefix(full, tc.wantMsg) || !strings.Contains(full, "errors/errors_test.go") {
				t.Fatalf("%%+v lacks message or origin:\n%s", full)
			}
		})
	}
}
