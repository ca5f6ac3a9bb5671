package awl

import (
	"reflect"

	"github.com/awl-di/awl/internal/keys"
)

// Provider is the lazy-resolution wrapper: requesting Provider[T]
// instead of T defers construction of T until Get is called. The
// wrapper itself is memoized per request key, so repeated requests for
// the same provider key return the identical wrapper; Get resolves
// freshly on every call and caches nothing of its own.
// Providers are comparable values: every resolution of one provider
// key yields the identical wrapper.
type Provider[T any] struct {
	in  *Injector
	key *keys.Key
}

// Get resolves the target key now. Two calls may return different
// instances when the target is unscoped.
func (p Provider[T]) Get() (T, error) {
	var zero T
	if p.in == nil {
		return zero, errResolution("", "provider not obtained from an injector")
	}

	v, err := p.in.resolveKey(*p.key)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, errResolution(p.key.Canonical(), "resolved value has unexpected type")
	}
	return typed, nil
}

// Key returns the canonical target key this provider resolves.
func (p Provider[T]) Key() string {
	if p.key == nil {
		return ""
	}
	return p.key.Canonical()
}

// MustGet is Get panicking on failure.
func (p Provider[T]) MustGet() T {
	v, err := p.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// providerMaker is implemented by every Provider instantiation; the
// engine uses it to recognize provider request types and to build
// wrappers without knowing T.
type providerMaker interface {
	providerTarget() reflect.Type
	makeProvider(in *Injector, target keys.Key) any
}

func (Provider[T]) providerTarget() reflect.Type {
	return keys.TypeOf[T]()
}

func (Provider[T]) makeProvider(in *Injector, target keys.Key) any {
	return Provider[T]{in: in, key: &target}
}

var providerMakerType = reflect.TypeOf((*providerMaker)(nil)).Elem()

// newProviderFor recognizes the lazy-provider special case: when the
// implementation type is Provider[U], it returns a deferred wrapper
// bound to (U, same qualifiers) instead of building U now.
func (in *Injector) newProviderFor(impl reflect.Type, k keys.Key) (any, bool) {
	if impl.Kind() != reflect.Struct || !impl.Implements(providerMakerType) {
		return nil, false
	}

	maker := reflect.New(impl).Elem().Interface().(providerMaker)
	target := keys.New(maker.providerTarget(), k.Qualifiers...)
	return maker.makeProvider(in, target), true
}
