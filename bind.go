package awl

import (
	"reflect"

	"github.com/awl-di/awl/internal/keys"
)

// Bind registers implementation type T for requests of (A, qualifiers).
// Nothing is validated at bind time: T's constructibility is checked
// lazily on first resolution, and rebinding the same key silently
// replaces the previous entry.
func Bind[A, T any](in *Injector, qualifiers ...Qualifier) {
	in.bindings.bindType(keys.For[A](qualifiers...), keys.TypeOf[T]())
}

// BindInstance registers a pre-built value for requests of
// (A, qualifiers). The value is returned as-is on every resolution and
// never passes through member injection.
func BindInstance[A any](in *Injector, value A, qualifiers ...Qualifier) {
	in.bindings.bindInstance(keys.For[A](qualifiers...), value)
}

// BindType is the non-generic form of Bind.
func (in *Injector) BindType(abstract, impl reflect.Type, qualifiers ...Qualifier) {
	in.bindings.bindType(keys.New(abstract, qualifiers...), impl)
}
