// Package keys defines the request key used to address bindings and
// cached instances: a requested type plus its ordered qualifier list.
package keys

import (
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Key is the composite identity of a dependency lookup. Keys are value
// objects, created fresh per resolution and never interned. Two keys
// are equal iff their types are equal and their qualifier lists match
// pairwise in order.
type Key struct {
	Type       reflect.Type
	Qualifiers []Qualifier
}

// New builds a key for a requested type and its qualifiers.
func New(t reflect.Type, qualifiers ...Qualifier) Key {
	return Key{Type: t, Qualifiers: qualifiers}
}

// For builds a key for the type parameter T. Interface types are
// supported via the pointer-element trick.
func For[T any](qualifiers ...Qualifier) Key {
	return New(TypeOf[T](), qualifiers...)
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Equal reports key equality: equal types and order-sensitive pairwise
// qualifier matches.
func (k Key) Equal(other Key) bool {
	if k.Type != other.Type {
		return false
	}
	if len(k.Qualifiers) != len(other.Qualifiers) {
		return false
	}
	for i, q := range k.Qualifiers {
		if !q.Match(other.Qualifiers[i]) {
			return false
		}
	}
	return true
}

// Canonical returns the deterministic string form of the key, used as
// the map key in registries and caches. Equal keys always canonicalize
// identically.
func (k Key) Canonical() string {
	if len(k.Qualifiers) == 0 {
		return TypeKey(k.Type)
	}
	var sb strings.Builder
	sb.WriteString(TypeKey(k.Type))
	for _, q := range k.Qualifiers {
		sb.WriteByte('@')
		q.encode(&sb)
	}
	return sb.String()
}

// String renders the key for error messages: qualifiers first, then the
// type.
func (k Key) String() string {
	var sb strings.Builder
	for _, q := range k.Qualifiers {
		sb.WriteByte('@')
		q.encode(&sb)
		sb.WriteByte(' ')
	}
	sb.WriteString(TypeKey(k.Type))
	return sb.String()
}

var typeKeyCache sync.Map

// TypeKey returns the canonical string form of a type.
func TypeKey(t reflect.Type) string {
	if cached, ok := typeKeyCache.Load(t); ok {
		return cached.(string)
	}

	key := buildTypeKey(t)
	typeKeyCache.Store(t, key)
	return key
}

func buildTypeKey(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Ptr:
		return "*" + buildTypeKey(t.Elem())
	case reflect.Slice:
		return "[]" + buildTypeKey(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + buildTypeKey(t.Elem())
	case reflect.Map:
		return "map[" + buildTypeKey(t.Key()) + "]" + buildTypeKey(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + buildTypeKey(t.Elem())
		case reflect.SendDir:
			return "chan<- " + buildTypeKey(t.Elem())
		default:
			return "chan " + buildTypeKey(t.Elem())
		}
	case reflect.Func:
		return t.String()
	default:
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.Name()
	}
}

// IsNil reports whether v is nil, including typed nils behind
// interfaces.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
