package awl

import (
	"reflect"
	"sort"

	"github.com/awl-di/awl/internal/keys"
)

// bindingRegistry holds the two binding maps, both keyed by canonical
// request-key strings. The instance map holds pre-built values,
// explicit instance bindings and memoized lazy providers; the type map
// holds implementation types to instantiate on a miss. An instance hit
// always short-circuits resolution.
//
// Writes are last-write-wins with no duplicate detection and no
// validation; entries are never removed.
type bindingRegistry struct {
	instances map[string]any
	types     map[string]reflect.Type
}

func newBindingRegistry() *bindingRegistry {
	return &bindingRegistry{
		instances: make(map[string]any),
		types:     make(map[string]reflect.Type),
	}
}

func (r *bindingRegistry) bindInstance(k keys.Key, value any) {
	r.instances[k.Canonical()] = value
}

func (r *bindingRegistry) bindType(k keys.Key, impl reflect.Type) {
	r.types[k.Canonical()] = impl
}

func (r *bindingRegistry) lookupInstance(k keys.Key) (any, bool) {
	v, ok := r.instances[k.Canonical()]
	return v, ok
}

func (r *bindingRegistry) lookupType(k keys.Key) (reflect.Type, bool) {
	t, ok := r.types[k.Canonical()]
	return t, ok
}

func (r *bindingRegistry) has(k keys.Key) bool {
	ck := k.Canonical()
	if _, ok := r.instances[ck]; ok {
		return true
	}
	_, ok := r.types[ck]
	return ok
}

func (r *bindingRegistry) size() int {
	n := len(r.types)
	for ck := range r.instances {
		if _, ok := r.types[ck]; !ok {
			n++
		}
	}
	return n
}

func (r *bindingRegistry) keys() []string {
	out := make([]string, 0, len(r.types)+len(r.instances))
	for ck := range r.types {
		out = append(out, ck)
	}
	for ck := range r.instances {
		if _, ok := r.types[ck]; !ok {
			out = append(out, ck)
		}
	}
	sort.Strings(out)
	return out
}
