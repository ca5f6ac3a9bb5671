// Package awl is a minimal dependency-injection container: given
// bindings from abstract request keys to concrete producers, it
// resolves, constructs and wires object graphs on demand.
//
// # Quick start
//
// Create an injector, bind implementations to abstract types, resolve:
//
//	in := awl.New()
//
//	awl.Bind[Engine, *V8Engine](in)
//	awl.Bind[Seat, *DriversSeat](in, awl.Named("drivers"))
//
//	car, err := awl.Resolve[*Car](in)
//
// Requests are addressed by a request key: the requested type plus an
// ordered list of qualifiers. Two bindings of the same type are told
// apart by their qualifiers:
//
//	awl.Bind[Tire, *SpareTire](in, awl.Named("spare"))
//	spare, err := awl.Resolve[Tire](in, awl.Named("spare"))
//
// # Bindings
//
//	awl.Bind[A, T](in, quals...)            // instantiate T for requests of A
//	awl.BindInstance[A](in, value, quals...) // return value as-is
//
// Bind-time is cheap on purpose: nothing is validated until a key is
// first resolved, rebinding silently replaces, and entries are never
// removed.
//
// # Describing types
//
// Go has no annotations, so a type states its injection metadata
// explicitly:
//
//	awl.MustDescribe[*Car](in,
//	    awl.Constructor(NewCar, awl.Param(awl.Named("drivers"))),
//	    awl.Method((*Car).SetWheels),
//	)
//	awl.MustDescribe[*Cupholder](in, awl.Scoped())
//
// Fields use the awl struct tag instead:
//
//	type Car struct {
//	    Engine Engine `awl:""`        // inject by type
//	    Radio  *Radio `awl:"premium"` // shorthand for Named("premium")
//	}
//
// Types without a registered constructor are built through their
// zero-argument path and then field/method injected.
//
// # Scopes
//
// An unscoped type yields a fresh instance per resolution. A type
// described with Scoped() is cached per request key after its first
// build and every later resolution of that key returns the same
// instance.
//
// # Lazy providers
//
// Requesting Provider[T] instead of T defers construction:
//
//	p, err := awl.Resolve[awl.Provider[Engine]](in)
//	engine, err := p.Get() // builds (or re-builds) now
//
// The wrapper is memoized per key; Get resolves freshly every call.
//
// # Static members
//
// Package-level variables and functions attached to a type via
// StaticField/StaticMethod are injected exactly once per injector,
// no matter how many instances are built.
//
// # Concurrency
//
// An Injector is not safe for concurrent use. Resolution is a plain
// synchronous call tree; callers must serialize access externally.
// There is no cycle detection: a cyclic constructor dependency recurses
// until the stack is exhausted. Breaking such cycles is what
// Provider[T] is for.
package awl
