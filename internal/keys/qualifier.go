package keys

import (
	"fmt"
	"reflect"
	"strings"
)

// Attr is a single named attribute value declared on a Qualifier.
// Value must be plain scalar data (string, number, bool) or a nested
// Qualifier. Pointer and other reference values are unsupported: the
// canonical encoding renders them by address, so two Match-equal
// qualifiers would stop sharing one registry key.
type Attr struct {
	Name  string
	Value any
}

// Qualifier is a structural tag disambiguating multiple bindings of the
// same type. Two qualifiers match on name and attribute values only;
// object identity is irrelevant.
type Qualifier struct {
	Name  string
	Attrs []Attr
}

// Named builds the ubiquitous name-valued qualifier.
func Named(name string) Qualifier {
	return Qualifier{Name: "named", Attrs: []Attr{{Name: "value", Value: name}}}
}

// Match reports whether q and other are structurally equal: same tag
// name, same attribute count, and every attribute pairwise equal.
// Attribute values that are themselves qualifiers are matched
// recursively. Results are recomputed on every call.
func (q Qualifier) Match(other Qualifier) bool {
	if q.Name != other.Name {
		return false
	}
	if len(q.Attrs) != len(other.Attrs) {
		return false
	}
	for i, attr := range q.Attrs {
		o := other.Attrs[i]
		if attr.Name != o.Name {
			return false
		}
		if !attrValuesEqual(attr.Value, o.Value) {
			return false
		}
	}
	return true
}

func attrValuesEqual(a, b any) bool {
	qa, aok := a.(Qualifier)
	qb, bok := b.(Qualifier)
	if aok != bok {
		return false
	}
	if aok {
		return qa.Match(qb)
	}
	return reflect.DeepEqual(a, b)
}

// String returns the canonical encoding of the qualifier. The encoding
// is deterministic and injective over Match equality, so it doubles as
// the qualifier portion of a registry map key.
func (q Qualifier) String() string {
	var sb strings.Builder
	q.encode(&sb)
	return sb.String()
}

func (q Qualifier) encode(sb *strings.Builder) {
	sb.WriteString(q.Name)
	sb.WriteByte('(')
	for i, attr := range q.Attrs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(attr.Name)
		sb.WriteByte('=')
		if nested, ok := attr.Value.(Qualifier); ok {
			nested.encode(sb)
		} else {
			fmt.Fprintf(sb, "%#v", attr.Value)
		}
	}
	sb.WriteByte(')')
}
