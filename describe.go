package awl

import (
	"fmt"
	"reflect"

	"github.com/awl-di/awl/internal/keys"
	"github.com/awl-di/awl/internal/typeinfo"
)

// TypeOption declares one piece of injection metadata for a type being
// described.
type TypeOption func(*describeTarget) error

type describeTarget struct {
	typ  reflect.Type
	decl *typeinfo.Decl
}

// ParamSpec carries the qualifiers of one constructor or method
// parameter, positionally.
type ParamSpec struct {
	qualifiers []Qualifier
}

// Param declares the qualifiers of the next parameter position.
func Param(qualifiers ...Qualifier) ParamSpec {
	return ParamSpec{qualifiers: qualifiers}
}

// Describe registers injection metadata for the struct type T (or its
// pointer type): its injectable constructor, scope marker, injectable
// methods and static members. Go carries no annotations, so this is how
// a type states what the injector would otherwise read off annotations.
// Metadata must be registered before the type is first resolved;
// descriptors are derived once and cached.
func Describe[T any](in *Injector, opts ...TypeOption) error {
	t := keys.TypeOf[T]()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return errBadDescriptor(keys.TypeKey(t), fmt.Errorf("%s is not a struct type", keys.TypeKey(t)))
	}

	target := &describeTarget{typ: t, decl: in.types.Decl(t)}
	for _, opt := range opts {
		if err := opt(target); err != nil {
			return errBadDescriptor(keys.TypeKey(t), err)
		}
	}
	return nil
}

// MustDescribe is Describe panicking on failure.
func MustDescribe[T any](in *Injector, opts ...TypeOption) {
	if err := Describe[T](in, opts...); err != nil {
		panic(err)
	}
}

// Scoped marks the type as scope-cached: the engine stores the first
// instance built per request key and reuses it for every later request
// of that key.
func Scoped() TypeOption {
	return func(t *describeTarget) error {
		t.decl.Scoped = true
		return nil
	}
}

// Constructor registers fn as the injectable constructor. fn must be a
// function returning the described type (by value or pointer),
// optionally with a trailing error. Param specs attach qualifiers to
// parameters positionally; omitted positions are unqualified.
func Constructor(fn any, params ...ParamSpec) TypeOption {
	return func(t *describeTarget) error {
		ctor, err := typeinfo.NewCtor(fn, t.typ, qualifierSets(params))
		if err != nil {
			return err
		}
		t.decl.Ctor = ctor
		return nil
	}
}

// Method marks a method as injectable: it will be invoked once per
// freshly built instance with its parameters resolved through the
// injector. fn must be a method expression of the described type, e.g.
// (*Car).SetWheels; unexported methods work when described from their
// own package.
func Method(fn any, params ...ParamSpec) TypeOption {
	return func(t *describeTarget) error {
		m, err := typeinfo.NewMethod(fn, t.typ, qualifierSets(params))
		if err != nil {
			return err
		}
		t.decl.Methods = append(t.decl.Methods, m)
		return nil
	}
}

// DeclaredMethod records a method declaration without marking it
// injectable, so it still suppresses same-signature injectable methods
// of embedded levels. Needed only for unexported methods, which
// reflection cannot enumerate; exported declarations are found
// automatically.
func DeclaredMethod(fn any) TypeOption {
	return func(t *describeTarget) error {
		m, err := typeinfo.NewMethod(fn, t.typ, nil)
		if err != nil {
			return err
		}
		m.Injectable = false
		t.decl.Methods = append(t.decl.Methods, m)
		return nil
	}
}

// Field attaches qualifiers to a struct field, marking it injectable.
// This supersedes the awl tag shorthand for the same field. The field
// must be declared on the described type itself; fields promoted from
// an embedded type are registered on that type's own descriptor.
func Field(name string, qualifiers ...Qualifier) TypeOption {
	return func(t *describeTarget) error {
		f, ok := t.typ.FieldByName(name)
		if !ok {
			return fmt.Errorf("%s has no field %q", keys.TypeKey(t.typ), name)
		}
		if len(f.Index) > 1 {
			owner := t.typ
			for _, i := range f.Index[:len(f.Index)-1] {
				owner = owner.Field(i).Type
				if owner.Kind() == reflect.Ptr {
					owner = owner.Elem()
				}
			}
			return fmt.Errorf("field %s.%s is declared on embedded %s; describe that type instead", keys.TypeKey(t.typ), name, keys.TypeKey(owner))
		}
		if f.PkgPath != "" {
			return fmt.Errorf("injectable field %s.%s must be exported", keys.TypeKey(t.typ), name)
		}
		t.decl.Fields[name] = qualifiers
		return nil
	}
}

// StaticField attaches a package-level variable to the described type
// as a static injection point: target (a pointer to the variable) is
// set exactly once per injector, during the first member injection that
// reaches this type's hierarchy level.
func StaticField(name string, target any, qualifiers ...Qualifier) TypeOption {
	return func(t *describeTarget) error {
		sf, err := typeinfo.NewStaticField(name, target, qualifiers)
		if err != nil {
			return err
		}
		t.decl.StaticFields = append(t.decl.StaticFields, sf)
		return nil
	}
}

// StaticMethod attaches a package-level function to the described type
// as a static injection point, invoked exactly once per injector with
// resolved arguments.
func StaticMethod(fn any, params ...ParamSpec) TypeOption {
	return func(t *describeTarget) error {
		sm, err := typeinfo.NewStaticMethod(fn, qualifierSets(params))
		if err != nil {
			return err
		}
		t.decl.StaticMethods = append(t.decl.StaticMethods, sm)
		return nil
	}
}

func qualifierSets(params []ParamSpec) [][]keys.Qualifier {
	if len(params) == 0 {
		return nil
	}
	sets := make([][]keys.Qualifier, len(params))
	for i, p := range params {
		sets[i] = p.qualifiers
	}
	return sets
}
