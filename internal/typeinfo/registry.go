package typeinfo

import (
	"fmt"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"github.com/awl-di/awl/internal/keys"
)

// TagKey is the struct tag marking injectable fields.
const TagKey = "awl"

// Decl is the explicitly registered metadata for one type, the Go
// analog of its annotations. It is merged with reflection-derived data
// when the descriptor is built.
type Decl struct {
	Scoped        bool
	Ctor          *Ctor
	Methods       []Method
	Fields        map[string][]keys.Qualifier
	StaticFields  []StaticField
	StaticMethods []StaticMethod
}

// Registry owns the declared metadata and the derived descriptors.
// Descriptors are built once per type, on first Lookup, and cached;
// metadata registered for a type after its first Lookup is not seen.
type Registry struct {
	decls map[reflect.Type]*Decl
	infos map[reflect.Type]*Info
}

func NewRegistry() *Registry {
	return &Registry{
		decls: make(map[reflect.Type]*Decl),
		infos: make(map[reflect.Type]*Info),
	}
}

// Decl returns the metadata record for a struct type, creating it if
// needed. Pointer types are normalized to their element type.
func (r *Registry) Decl(t reflect.Type) *Decl {
	t = deref(t)
	d, ok := r.decls[t]
	if !ok {
		d = &Decl{Fields: make(map[string][]keys.Qualifier)}
		r.decls[t] = d
	}
	return d
}

// Lookup returns the descriptor for a struct type, deriving and caching
// it on first use.
func (r *Registry) Lookup(t reflect.Type) (*Info, error) {
	t = deref(t)
	if info, ok := r.infos[t]; ok {
		return info, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct type", keys.TypeKey(t))
	}

	info := &Info{Type: t}
	if d, ok := r.decls[t]; ok {
		info.Scoped = d.Scoped
		info.Ctor = d.Ctor
	}

	for _, lv := range collectLevels(t) {
		if err := r.populateLevel(lv); err != nil {
			return nil, err
		}
		info.Levels = append(info.Levels, lv)
	}

	r.infos[t] = info
	return info, nil
}

func deref(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		return t.Elem()
	}
	return t
}

// collectLevels walks the embedding hierarchy root-first: every
// value-embedded struct contributes a level before its embedder, and
// the outermost type is the final, most-derived level.
func collectLevels(outer reflect.Type) []*Level {
	var walk func(t reflect.Type, index []int) []*Level
	walk = func(t reflect.Type, index []int) []*Level {
		var levels []*Level
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous || f.Type.Kind() != reflect.Struct {
				continue
			}
			levels = append(levels, walk(f.Type, append(slices.Clone(index), i))...)
		}
		return append(levels, &Level{Type: t, Index: index})
	}
	return walk(outer, nil)
}

func (r *Registry) populateLevel(lv *Level) error {
	decl := r.decls[lv.Type]

	if err := r.collectFields(lv, decl); err != nil {
		return err
	}
	r.collectMethods(lv, decl)

	if decl != nil {
		lv.StaticFields = decl.StaticFields
		lv.StaticMethods = decl.StaticMethods
	}
	return nil
}

// collectFields gathers injectable fields of one level: struct fields
// carrying the awl tag, plus fields registered with explicit
// qualifiers. Registered qualifiers win over the tag shorthand.
func (r *Registry) collectFields(lv *Level, decl *Decl) error {
	for i := 0; i < lv.Type.NumField(); i++ {
		f := lv.Type.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Ptr && f.Type.Elem().Kind() == reflect.Struct {
			// Pointer embeds are not hierarchy levels: the embed may be nil
			// when members would be injected. Metadata inside one would be
			// silently skipped, so its presence is an error.
			elem := f.Type.Elem()
			if _, declared := r.decls[elem]; declared || taggedWithin(elem) {
				return fmt.Errorf("%s embeds %s by pointer; pointer-embedded types are not injected, embed by value instead", keys.TypeKey(lv.Type), keys.TypeKey(elem))
			}
			continue
		}

		tag, tagged := f.Tag.Lookup(TagKey)
		var qualifiers []keys.Qualifier
		if decl != nil {
			if q, ok := decl.Fields[f.Name]; ok {
				tagged = true
				qualifiers = q
			} else if tagged && tag != "" {
				qualifiers = []keys.Qualifier{keys.Named(tag)}
			}
		} else if tagged && tag != "" {
			qualifiers = []keys.Qualifier{keys.Named(tag)}
		}
		if !tagged {
			continue
		}
		if f.PkgPath != "" {
			return fmt.Errorf("injectable field %s.%s must be exported", keys.TypeKey(lv.Type), f.Name)
		}

		lv.Fields = append(lv.Fields, Field{
			Name:       f.Name,
			Index:      append(slices.Clone(lv.Index), i),
			Type:       f.Type,
			Qualifiers: qualifiers,
		})
	}
	return nil
}

// taggedWithin reports whether t or any of its value-embedded structs
// declares an awl-tagged field.
func taggedWithin(t reflect.Type) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if _, ok := f.Tag.Lookup(TagKey); ok {
			return true
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct && taggedWithin(f.Type) {
			return true
		}
	}
	return false
}

// collectMethods gathers the methods declared at one level: registered
// injectable methods first, then exported methods found by reflection.
// Promotion wrappers synthesized for embedded types are skipped so a
// method counts only at the level that actually declares it.
func (r *Registry) collectMethods(lv *Level, decl *Decl) {
	seen := make(map[string]bool)
	if decl != nil {
		for _, m := range decl.Methods {
			lv.Methods = append(lv.Methods, m)
			seen[m.Signature()] = true
		}
	}

	add := func(m reflect.Method) {
		dm := Method{
			Name:     m.Name,
			Fn:       m.Func,
			Params:   funcParams(m.Func.Type(), 1, nil),
			Exported: true,
			PkgPath:  lv.Type.PkgPath(),
		}
		sig := dm.Signature()
		if seen[sig] {
			return
		}
		seen[sig] = true
		lv.Methods = append(lv.Methods, dm)
	}

	// Value-receiver methods reappear in the pointer method set as
	// autogenerated adapters, so the wrapper check dedupes the two
	// passes on its own.
	for i := 0; i < lv.Type.NumMethod(); i++ {
		if m := lv.Type.Method(i); !isPromotionWrapper(m) {
			add(m)
		}
	}
	pt := reflect.PointerTo(lv.Type)
	for i := 0; i < pt.NumMethod(); i++ {
		if m := pt.Method(i); !isPromotionWrapper(m) {
			add(m)
		}
	}
}

// isPromotionWrapper reports whether a method's implementation is a
// compiler-synthesized wrapper (embedding promotion or value-to-pointer
// adaptation), recognizable by its <autogenerated> source position.
func isPromotionWrapper(m reflect.Method) bool {
	pc := m.Func.Pointer()
	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return false
	}
	file, _ := rf.FileLine(rf.Entry())
	return strings.Contains(file, "<autogenerated>")
}
