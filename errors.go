package awl

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeUnresolvable
	ErrCodeNoConstructor
	ErrCodeConstruction
	ErrCodeInjection
	ErrCodeBadDescriptor
	ErrCodeResolution
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:       "UNKNOWN",
	ErrCodeUnresolvable:  "UNRESOLVABLE",
	ErrCodeNoConstructor: "NO_CONSTRUCTOR",
	ErrCodeConstruction:  "CONSTRUCTION_FAILED",
	ErrCodeInjection:     "INJECTION_FAILED",
	ErrCodeBadDescriptor: "BAD_DESCRIPTOR",
	ErrCodeResolution:    "RESOLUTION_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the fatal resolution failure reported by the injector. All
// errors abort the current resolution; there is no retry and no partial
// result.
type Error struct {
	Code    ErrorCode
	Message string
	Key     string
	Cause   error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s]", e.Code))

	if e.Key != "" {
		b.WriteString(fmt.Sprintf(" key=%q:", e.Key))
	}

	b.WriteString(" ")
	b.WriteString(e.Message)

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errUnresolvable(key, message string) *Error {
	return newError(ErrCodeUnresolvable, message, nil).WithKey(key)
}

func errNoConstructor(key, message string) *Error {
	return newError(ErrCodeNoConstructor, message, nil).WithKey(key)
}

func errConstruction(key string, cause error) *Error {
	return newError(ErrCodeConstruction, "construction failed", cause).WithKey(key)
}

func errInjection(key, member string, cause error) *Error {
	return newError(ErrCodeInjection, fmt.Sprintf("injection of %s failed", member), cause).WithKey(key)
}

func errBadDescriptor(typeKey string, cause error) *Error {
	return newError(ErrCodeBadDescriptor, "invalid type descriptor", cause).WithKey(typeKey)
}

func errResolution(key, message string) *Error {
	return newError(ErrCodeResolution, message, nil).WithKey(key)
}

func IsUnresolvable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeUnresolvable
}

func IsNoConstructor(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeNoConstructor
}

func IsConstructionFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConstruction
}

func IsInjectionFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInjection
}

func IsBadDescriptor(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeBadDescriptor
}

func IsResolutionFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeResolution
}
