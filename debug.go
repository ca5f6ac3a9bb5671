package awl

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/repr"

	"github.com/awl-di/awl/internal/keys"
)

// BindingInfo describes one registry entry for debugging.
type BindingInfo struct {
	Key      string
	Impl     string
	Instance any
	Cached   bool
}

// Bindings returns a snapshot of the registry, sorted by key: type
// bindings with their implementation types, plus every cached or
// explicitly bound instance.
func (in *Injector) Bindings() []BindingInfo {
	infos := make([]BindingInfo, 0, in.bindings.size())

	for ck, impl := range in.bindings.types {
		bi := BindingInfo{Key: ck, Impl: keys.TypeKey(impl)}
		if v, ok := in.bindings.instances[ck]; ok {
			bi.Instance = v
			bi.Cached = true
		}
		infos = append(infos, bi)
	}
	for ck, v := range in.bindings.instances {
		if _, ok := in.bindings.types[ck]; ok {
			continue
		}
		infos = append(infos, BindingInfo{Key: ck, Instance: v, Cached: true})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos
}

func (in *Injector) PrintBindings() {
	in.FprintBindings(os.Stdout)
}

func (in *Injector) FprintBindings(w io.Writer) {
	infos := in.Bindings()

	if len(infos) == 0 {
		_, _ = fmt.Fprintln(w, "(empty injector)")
		return
	}

	for _, bi := range infos {
		status := "○"
		if bi.Cached {
			status = "●"
		}

		switch {
		case bi.Cached && bi.Impl != "":
			_, _ = fmt.Fprintf(w, "%s %s → %s = %s\n", status, bi.Key, bi.Impl, repr.String(bi.Instance))
		case bi.Cached:
			_, _ = fmt.Fprintf(w, "%s %s = %s\n", status, bi.Key, repr.String(bi.Instance))
		default:
			_, _ = fmt.Fprintf(w, "%s %s → %s\n", status, bi.Key, bi.Impl)
		}
	}
}

func (in *Injector) SprintBindings() string {
	var sb strings.Builder
	in.FprintBindings(&sb)
	return sb.String()
}
