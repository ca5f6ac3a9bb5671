package awl

import "github.com/awl-di/awl/internal/keys"

// Qualifier is a structural tag disambiguating multiple bindings of the
// same type: a named tag plus ordered attribute values. Qualifiers
// match on structure alone; see keys.Qualifier.Match.
type Qualifier = keys.Qualifier

// Attr is a single attribute value on a Qualifier.
type Attr = keys.Attr

// Named returns the common name-valued qualifier.
func Named(name string) Qualifier {
	return keys.Named(name)
}
