// Package awltest provides helpers for exercising an injector inside
// tests, plus a small reference object graph used by the package's own
// suite.
package awltest

import (
	"github.com/awl-di/awl"
)

// TB is the subset of testing.TB the helpers need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// TestInjector wraps an Injector with failure-aware helpers.
type TestInjector struct {
	*awl.Injector
	tb TB
}

// New builds a fresh injector for a test.
func New(tb TB, opts ...awl.Option) *TestInjector {
	tb.Helper()

	return &TestInjector{
		Injector: awl.New(opts...),
		tb:       tb,
	}
}

// MustResolve resolves the key or fails the test.
func MustResolve[T any](ti *TestInjector, qualifiers ...awl.Qualifier) T {
	ti.tb.Helper()

	v, err := awl.Resolve[T](ti.Injector, qualifiers...)
	if err != nil {
		ti.tb.Fatalf("failed to resolve: %v", err)
	}
	return v
}

// RequireDescribe registers type metadata or fails the test.
func RequireDescribe[T any](ti *TestInjector, opts ...awl.TypeOption) {
	ti.tb.Helper()

	if err := awl.Describe[T](ti.Injector, opts...); err != nil {
		ti.tb.Fatalf("failed to describe type: %v", err)
	}
}

// AssertHas fails the test unless the key is registered.
func AssertHas[T any](ti *TestInjector, qualifiers ...awl.Qualifier) {
	ti.tb.Helper()

	if !awl.Has[T](ti.Injector, qualifiers...) {
		ti.tb.Errorf("expected injector to have a binding, registry:\n%s", ti.SprintBindings())
	}
}

// AssertNotHas fails the test if the key is registered.
func AssertNotHas[T any](ti *TestInjector, qualifiers ...awl.Qualifier) {
	ti.tb.Helper()

	if awl.Has[T](ti.Injector, qualifiers...) {
		ti.tb.Errorf("expected injector to not have a binding, registry:\n%s", ti.SprintBindings())
	}
}

// RequireUnresolvable resolves the key and fails the test unless the
// resolution fails with an unresolvable-key error.
func RequireUnresolvable[T any](ti *TestInjector, qualifiers ...awl.Qualifier) {
	ti.tb.Helper()

	_, err := awl.Resolve[T](ti.Injector, qualifiers...)
	if !awl.IsUnresolvable(err) {
		ti.tb.Fatalf("expected unresolvable key, got %v", err)
	}
}
