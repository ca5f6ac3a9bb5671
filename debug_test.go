package awl_test

import (
	"strings"
	"testing"

	"github.com/awl-di/awl"
)

func TestBindingsSnapshot(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.BindInstance(in, &Config{Host: "localhost"})

	infos := in.Bindings()
	if len(infos) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Key > infos[i].Key {
			t.Fatal("expected entries sorted by key")
		}
	}

	var sawType, sawInstance bool
	for _, bi := range infos {
		if bi.Impl != "" && !bi.Cached {
			sawType = true
		}
		if bi.Cached && bi.Instance != nil {
			sawInstance = true
		}
	}
	if !sawType || !sawInstance {
		t.Errorf("expected one type binding and one instance, got %+v", infos)
	}
}

func TestBindingsReflectScopeCaching(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.MustDescribe[*MemStore](in, awl.Scoped())

	for _, bi := range in.Bindings() {
		if bi.Cached {
			t.Fatalf("expected no cached instances before resolution, got %+v", bi)
		}
	}

	awl.MustResolve[Store](in)

	var cached bool
	for _, bi := range in.Bindings() {
		if bi.Cached {
			cached = true
		}
	}
	if !cached {
		t.Fatal("expected the scoped instance to appear in the snapshot")
	}
}

func TestSprintBindings(t *testing.T) {
	t.Parallel()

	in := awl.New()
	if got := in.SprintBindings(); !strings.Contains(got, "empty injector") {
		t.Errorf("expected empty marker, got %q", got)
	}

	awl.Bind[Store, *MemStore](in)
	awl.BindInstance(in, &Config{Host: "localhost"})

	out := in.SprintBindings()
	if !strings.Contains(out, "○") || !strings.Contains(out, "●") {
		t.Errorf("expected both status glyphs, got %q", out)
	}
	if !strings.Contains(out, "MemStore") || !strings.Contains(out, "Config") {
		t.Errorf("expected both bindings listed, got %q", out)
	}
}
