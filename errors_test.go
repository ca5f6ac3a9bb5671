package awl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/awl-di/awl"
)

func TestErrorCodeString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code awl.ErrorCode
		want string
	}{
		{awl.ErrCodeUnknown, "UNKNOWN"},
		{awl.ErrCodeUnresolvable, "UNRESOLVABLE"},
		{awl.ErrCodeNoConstructor, "NO_CONSTRUCTOR"},
		{awl.ErrCodeConstruction, "CONSTRUCTION_FAILED"},
		{awl.ErrCodeInjection, "INJECTION_FAILED"},
		{awl.ErrCodeBadDescriptor, "BAD_DESCRIPTOR"},
		{awl.ErrCodeResolution, "RESOLUTION_FAILED"},
		{awl.ErrorCode(999), "UNKNOWN(999)"},
	}

	for _, tc := range cases {
		if got := tc.code.String(); got != tc.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	t.Parallel()

	cause := errors.New("db unreachable")
	err := &awl.Error{
		Code:    awl.ErrCodeConstruction,
		Message: "construction failed",
		Key:     "example.Database",
		Cause:   cause,
	}

	got := err.Error()
	for _, frag := range []string{"[CONSTRUCTION_FAILED]", `key="example.Database"`, "construction failed", "db unreachable"} {
		if !strings.Contains(got, frag) {
			t.Errorf("expected %q in %q", frag, got)
		}
	}

	if !errors.Is(err, cause) {
		t.Error("expected the cause in the unwrap chain")
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	a := &awl.Error{Code: awl.ErrCodeUnresolvable, Message: "one"}
	b := &awl.Error{Code: awl.ErrCodeUnresolvable, Message: "two"}
	c := &awl.Error{Code: awl.ErrCodeInjection, Message: "three"}

	if !errors.Is(a, b) {
		t.Error("expected same-code errors to match")
	}
	if errors.Is(a, c) {
		t.Error("expected different-code errors to not match")
	}
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	wrapped := func(code awl.ErrorCode) error {
		return &awl.Error{Code: code, Message: "x"}
	}

	cases := []struct {
		name string
		pred func(error) bool
		code awl.ErrorCode
	}{
		{"unresolvable", awl.IsUnresolvable, awl.ErrCodeUnresolvable},
		{"no constructor", awl.IsNoConstructor, awl.ErrCodeNoConstructor},
		{"construction", awl.IsConstructionFailed, awl.ErrCodeConstruction},
		{"injection", awl.IsInjectionFailed, awl.ErrCodeInjection},
		{"bad descriptor", awl.IsBadDescriptor, awl.ErrCodeBadDescriptor},
		{"resolution", awl.IsResolutionFailed, awl.ErrCodeResolution},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if !tc.pred(wrapped(tc.code)) {
				t.Error("expected predicate to match its own code")
			}
			if tc.pred(errors.New("plain")) {
				t.Error("expected predicate to reject foreign errors")
			}
			if tc.pred(nil) {
				t.Error("expected predicate to reject nil")
			}
		})
	}
}
