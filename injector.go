package awl

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/awl-di/awl/internal/keys"
	"github.com/awl-di/awl/internal/typeinfo"
)

// Injector resolves, constructs and wires object graphs on demand.
//
// An Injector is not safe for concurrent use: bindings, the scope cache
// and the static-member guard are mutated without locking, so callers
// must serialize all binding and resolution calls externally.
type Injector struct {
	bindings *bindingRegistry
	types    *typeinfo.Registry
	guard    map[guardKey]struct{}
	config   *injectorConfig
}

type injectorConfig struct {
	logger    *slog.Logger
	onResolve []ResolveHook
}

// New creates an empty injector.
func New(opts ...Option) *Injector {
	cfg := &injectorConfig{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Injector{
		bindings: newBindingRegistry(),
		types:    typeinfo.NewRegistry(),
		guard:    make(map[guardKey]struct{}),
		config:   cfg,
	}
}

// guardKey identifies a static member already injected by this
// injector: the declaring type plus the member signature. The guard
// grows monotonically and is never shared between injectors.
type guardKey struct {
	typ    reflect.Type
	member string
}

func (in *Injector) guarded(typ reflect.Type, member string) bool {
	_, ok := in.guard[guardKey{typ: typ, member: member}]
	return ok
}

func (in *Injector) recordGuard(typ reflect.Type, member string) {
	in.guard[guardKey{typ: typ, member: member}] = struct{}{}
}

// Size returns the number of registered bindings, instances included.
func (in *Injector) Size() int {
	return in.bindings.size()
}

// Keys returns the canonical key strings of all registered bindings.
func (in *Injector) Keys() []string {
	return in.bindings.keys()
}

func (in *Injector) observeResolve(k keys.Key, fn func() (any, error)) (any, error) {
	if len(in.config.onResolve) == 0 {
		return fn()
	}
	start := time.Now()
	v, err := fn()
	d := time.Since(start)
	for _, hook := range in.config.onResolve {
		hook(k.Canonical(), d, err)
	}
	return v, err
}
