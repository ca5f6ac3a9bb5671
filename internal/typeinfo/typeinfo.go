// Package typeinfo implements the introspection side of the injector:
// per-type descriptors listing the injectable constructor, the
// field/method injection points of every embedding level, and type
// metadata such as the scope marker.
//
// Go has no constructor or method annotations, so descriptors are
// assembled from two sources: explicit registration (constructor
// functions, method expressions, scope markers, static members) and
// reflection (tagged struct fields, embedded-struct hierarchy levels,
// declared exported methods).
package typeinfo

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/awl-di/awl/internal/keys"
)

// Param describes a single dependency parameter: its type plus the
// qualifiers attached to it.
type Param struct {
	Type       reflect.Type
	Qualifiers []keys.Qualifier
}

// Key returns the request key this parameter resolves through.
func (p Param) Key() keys.Key {
	return keys.New(p.Type, p.Qualifiers...)
}

// Ctor is an injectable constructor: a function taking the dependency
// parameters and returning the instance, optionally with an error.
type Ctor struct {
	Fn     reflect.Value
	Out    reflect.Type
	Params []Param
	HasErr bool
}

// Field is an injectable instance field. Index is the field's index
// path from the outermost struct type.
type Field struct {
	Name       string
	Index      []int
	Type       reflect.Type
	Qualifiers []keys.Qualifier
}

// Method is a method declared at one hierarchy level. Non-injectable
// methods participate only in override suppression. For injectable
// methods Fn holds the method expression (receiver-first), so
// unexported methods registered from their own package stay callable.
type Method struct {
	Name       string
	Fn         reflect.Value
	Params     []Param
	Injectable bool
	Exported   bool
	PkgPath    string
}

// Signature returns the override-comparison signature: name plus the
// parameter type list, receiver excluded.
func (m Method) Signature() string {
	var sb strings.Builder
	sb.WriteString(m.Name)
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(keys.TypeKey(p.Type))
	}
	sb.WriteByte(')')
	return sb.String()
}

// StaticField is a package-level variable attached to a declaring type,
// injected at most once per injector.
type StaticField struct {
	Name       string
	Target     reflect.Value // pointer to the package-level variable
	Type       reflect.Type
	Qualifiers []keys.Qualifier
}

// StaticMethod is a package-level function attached to a declaring
// type, invoked at most once per injector.
type StaticMethod struct {
	Name   string
	Fn     reflect.Value
	Params []Param
}

// Level is one stratum of the embedding hierarchy. Index is the path
// from the outer struct to this level's embedded value (empty for the
// outermost level).
type Level struct {
	Type          reflect.Type
	Index         []int
	Fields        []Field
	Methods       []Method
	StaticFields  []StaticField
	StaticMethods []StaticMethod
}

// Info is the complete descriptor for a constructible struct type.
// Levels are ordered root-first; the last level is the type itself.
type Info struct {
	Type   reflect.Type
	Scoped bool
	Ctor   *Ctor
	Levels []*Level
}

// NewCtor validates and wraps a constructor function for a type whose
// instances it must produce. params attaches qualifiers positionally;
// missing positions default to unqualified.
func NewCtor(fn any, out reflect.Type, params [][]keys.Qualifier) (*Ctor, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor for %s is not a function", keys.TypeKey(out))
	}
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("constructor for %s must not be variadic", keys.TypeKey(out))
	}

	hasErr := false
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errType {
			return nil, fmt.Errorf("constructor for %s: second result must be error, got %s", keys.TypeKey(out), ft.Out(1))
		}
		hasErr = true
	default:
		return nil, fmt.Errorf("constructor for %s must return the instance, optionally with an error", keys.TypeKey(out))
	}
	if !ft.Out(0).AssignableTo(out) && ft.Out(0) != reflect.PointerTo(out) {
		return nil, fmt.Errorf("constructor returns %s, expected %s", ft.Out(0), keys.TypeKey(out))
	}
	if len(params) > ft.NumIn() {
		return nil, fmt.Errorf("constructor for %s declares %d parameters but %d qualifier sets", keys.TypeKey(out), ft.NumIn(), len(params))
	}

	return &Ctor{
		Fn:     fv,
		Out:    ft.Out(0),
		Params: funcParams(ft, 0, params),
		HasErr: hasErr,
	}, nil
}

// NewMethod validates a method expression for recv (the level's struct
// type) and wraps it as an injectable method.
func NewMethod(fn any, recv reflect.Type, params [][]keys.Qualifier) (Method, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return Method{}, fmt.Errorf("injectable method on %s is not a function", keys.TypeKey(recv))
	}
	ft := fv.Type()
	if ft.NumIn() == 0 || !receiverMatches(ft.In(0), recv) {
		return Method{}, fmt.Errorf("injectable method on %s must be a method expression with a %s receiver", keys.TypeKey(recv), keys.TypeKey(recv))
	}
	if len(params) > ft.NumIn()-1 {
		return Method{}, fmt.Errorf("injectable method on %s declares %d parameters but %d qualifier sets", keys.TypeKey(recv), ft.NumIn()-1, len(params))
	}

	name := funcBaseName(fv)
	if name == "" {
		return Method{}, fmt.Errorf("cannot determine method name for injectable method on %s", keys.TypeKey(recv))
	}

	return Method{
		Name:       name,
		Fn:         fv,
		Params:     funcParams(ft, 1, params),
		Injectable: true,
		Exported:   isExportedName(name),
		PkgPath:    recv.PkgPath(),
	}, nil
}

// NewStaticField wraps a pointer to a package-level variable as a
// static injection point.
func NewStaticField(name string, target any, qualifiers []keys.Qualifier) (StaticField, error) {
	tv := reflect.ValueOf(target)
	if !tv.IsValid() || tv.Kind() != reflect.Ptr || tv.IsNil() {
		return StaticField{}, fmt.Errorf("static field %q must be a non-nil pointer to a package-level variable", name)
	}
	return StaticField{
		Name:       name,
		Target:     tv,
		Type:       tv.Type().Elem(),
		Qualifiers: qualifiers,
	}, nil
}

// NewStaticMethod wraps a package-level function as a static injection
// point.
func NewStaticMethod(fn any, params [][]keys.Qualifier) (StaticMethod, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return StaticMethod{}, fmt.Errorf("static method must be a function")
	}
	ft := fv.Type()
	if len(params) > ft.NumIn() {
		return StaticMethod{}, fmt.Errorf("static method declares %d parameters but %d qualifier sets", ft.NumIn(), len(params))
	}
	name := funcBaseName(fv)
	if name == "" {
		name = ft.String()
	}
	return StaticMethod{
		Name:   name,
		Fn:     fv,
		Params: funcParams(ft, 0, params),
	}, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func funcParams(ft reflect.Type, skip int, qualifiers [][]keys.Qualifier) []Param {
	params := make([]Param, 0, ft.NumIn()-skip)
	for i := skip; i < ft.NumIn(); i++ {
		p := Param{Type: ft.In(i)}
		if pos := i - skip; pos < len(qualifiers) {
			p.Qualifiers = qualifiers[pos]
		}
		params = append(params, p)
	}
	return params
}

func receiverMatches(in, recv reflect.Type) bool {
	return in == recv || in == reflect.PointerTo(recv)
}

// funcBaseName recovers the bare method or function name from a func
// value via its runtime symbol, e.g. "pkg.(*Car).setEngine" -> "setEngine".
func funcBaseName(fv reflect.Value) string {
	rf := runtime.FuncForPC(fv.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	name = strings.TrimSuffix(name, "-fm")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func isExportedName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z'
}
