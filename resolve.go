package awl

import (
	"fmt"
	"reflect"

	"github.com/awl-di/awl/internal/keys"
	"github.com/awl-di/awl/internal/typeinfo"
)

// Resolve returns the instance bound to (T, qualifiers), constructing
// and wiring it on demand. It is the entry point for external lookups
// and, transitively, for every recursive dependency resolution.
func Resolve[T any](in *Injector, qualifiers ...Qualifier) (T, error) {
	var zero T
	k := keys.For[T](qualifiers...)

	v, err := in.resolveKey(k)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, errResolution(k.Canonical(), fmt.Sprintf("resolved %s, want %s", keys.TypeKey(reflect.TypeOf(v)), keys.TypeKey(k.Type)))
	}
	return typed, nil
}

// MustResolve is Resolve panicking on failure.
func MustResolve[T any](in *Injector, qualifiers ...Qualifier) T {
	v, err := Resolve[T](in, qualifiers...)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveType is the non-generic entry point, for callers holding a
// reflect.Type instead of a type parameter.
func (in *Injector) ResolveType(t reflect.Type, qualifiers ...Qualifier) (any, error) {
	return in.resolveKey(keys.New(t, qualifiers...))
}

// Has reports whether a binding (instance or type) exists at the key.
// Unbound concrete types still resolve; Has only inspects the registry.
func Has[T any](in *Injector, qualifiers ...Qualifier) bool {
	return in.bindings.has(keys.For[T](qualifiers...))
}

// resolveKey is the single resolution funnel: every lookup, external or
// recursive, passes through here so observers see the whole graph walk.
func (in *Injector) resolveKey(k keys.Key) (any, error) {
	return in.observeResolve(k, func() (any, error) {
		return in.build(k)
	})
}

func (in *Injector) build(k keys.Key) (any, error) {
	if v, ok := in.bindings.lookupInstance(k); ok {
		return v, nil
	}

	impl, bound := in.bindings.lookupType(k)
	if !bound {
		impl = k.Type
	}

	if wrapper, ok := in.newProviderFor(impl, k); ok {
		in.bindings.bindInstance(k, wrapper)
		in.config.logger.Debug("memoized lazy provider", "key", k.Canonical())
		return wrapper, nil
	}

	elem, wantPtr, err := implStruct(k, impl)
	if err != nil {
		return nil, err
	}

	info, err := in.types.Lookup(elem)
	if err != nil {
		return nil, errBadDescriptor(keys.TypeKey(elem), err)
	}

	buf, err := in.construct(k, info)
	if err != nil {
		return nil, err
	}
	in.config.logger.Debug("constructed", "key", k.Canonical(), "type", keys.TypeKey(elem))

	// Scoped pointer instances are published before member injection so
	// back-references during injection observe the (half-built)
	// instance. Value instances have no identity to publish early; they
	// are cached once fully built.
	if info.Scoped && wantPtr {
		in.bindings.bindInstance(k, buf.Interface())
	}

	if err := in.injectMembers(buf, info); err != nil {
		return nil, err
	}

	var instance any
	if wantPtr {
		instance = buf.Interface()
	} else {
		instance = buf.Elem().Interface()
	}
	if info.Scoped && !wantPtr {
		in.bindings.bindInstance(k, instance)
	}
	return instance, nil
}

// implStruct reduces an implementation type to its constructible struct
// type. Interfaces without a binding cannot be reduced at all; other
// non-struct kinds have no construction path.
func implStruct(k keys.Key, impl reflect.Type) (reflect.Type, bool, error) {
	switch {
	case impl.Kind() == reflect.Ptr && impl.Elem().Kind() == reflect.Struct:
		return impl.Elem(), true, nil
	case impl.Kind() == reflect.Struct:
		return impl, false, nil
	case impl.Kind() == reflect.Interface:
		return nil, false, errUnresolvable(k.Canonical(), fmt.Sprintf("cannot resolve abstract type %s: no binding", keys.TypeKey(impl)))
	default:
		return nil, false, errNoConstructor(k.Canonical(), fmt.Sprintf("%s has neither an injectable constructor nor a zero-argument construction path", keys.TypeKey(impl)))
	}
}

// construct instantiates the descriptor's type: through its registered
// injectable constructor when present, otherwise through the
// zero-argument path. The result is always a pointer to the new
// instance.
func (in *Injector) construct(k keys.Key, info *typeinfo.Info) (reflect.Value, error) {
	ctor := info.Ctor
	if ctor == nil {
		return reflect.New(info.Type), nil
	}

	args := make([]reflect.Value, len(ctor.Params))
	for i, p := range ctor.Params {
		dep, err := in.resolveKey(p.Key())
		if err != nil {
			return reflect.Value{}, err
		}
		av, err := argValue(dep, p.Type)
		if err != nil {
			return reflect.Value{}, errConstruction(k.Canonical(), err)
		}
		args[i] = av
	}

	results, err := call(ctor.Fn, args)
	if err != nil {
		return reflect.Value{}, errConstruction(k.Canonical(), err)
	}
	if ctor.HasErr && !results[1].IsNil() {
		return reflect.Value{}, errConstruction(k.Canonical(), results[1].Interface().(error))
	}

	out := results[0]
	if out.Kind() == reflect.Ptr {
		if out.IsNil() {
			return reflect.Value{}, errConstruction(k.Canonical(), fmt.Errorf("constructor returned nil"))
		}
		return out, nil
	}

	buf := reflect.New(out.Type())
	buf.Elem().Set(out)
	return buf, nil
}

func argValue(dep any, want reflect.Type) (reflect.Value, error) {
	if dep == nil {
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(dep)
	if !v.Type().AssignableTo(want) {
		return reflect.Value{}, fmt.Errorf("resolved %s is not assignable to %s", keys.TypeKey(v.Type()), keys.TypeKey(want))
	}
	return v, nil
}

// call invokes fn trapping reflect-level panics (bad argument shapes,
// panicking targets) as errors.
func call(fn reflect.Value, args []reflect.Value) (results []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn.Call(args), nil
}
