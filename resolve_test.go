package awl_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/awl-di/awl"
)

type Store interface {
	Kind() string
}

type MemStore struct {
	built int
}

func (*MemStore) Kind() string { return "mem" }

type DiskStore struct {
	Path string
}

func (*DiskStore) Kind() string { return "disk" }

type Config struct {
	Host string
}

type Service struct {
	Store Store
	Cfg   *Config
}

func NewService(store Store, cfg *Config) *Service {
	return &Service{Store: store, Cfg: cfg}
}

func TestNew(t *testing.T) {
	t.Parallel()

	in := awl.New()
	if in == nil {
		t.Fatal("New() returned nil")
	}
	if in.Size() != 0 {
		t.Errorf("expected empty injector, got %d bindings", in.Size())
	}
}

func TestBindInstanceIdentity(t *testing.T) {
	t.Parallel()

	in := awl.New()
	cfg := &Config{Host: "localhost"}
	awl.BindInstance(in, cfg)

	for i := 0; i < 3; i++ {
		got, err := awl.Resolve[*Config](in)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if got != cfg {
			t.Fatal("expected the exact bound instance")
		}
	}
}

func TestBindInstanceToInterface(t *testing.T) {
	t.Parallel()

	in := awl.New()
	store := &MemStore{}
	awl.BindInstance[Store](in, store)

	got, err := awl.Resolve[Store](in)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != Store(store) {
		t.Fatal("expected the exact bound instance")
	}
}

func TestUnscopedYieldsFreshInstances(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)

	a := awl.MustResolve[Store](in)
	b := awl.MustResolve[Store](in)
	if a == b {
		t.Fatal("expected distinct instances for an unscoped binding")
	}
}

func TestScopedYieldsSameInstance(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.MustDescribe[*MemStore](in, awl.Scoped())

	a := awl.MustResolve[Store](in)
	b := awl.MustResolve[Store](in)
	if a != b {
		t.Fatal("expected the same instance for a scoped binding")
	}
}

func TestScopeCachesPerRequestKey(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.MustDescribe[*MemStore](in, awl.Scoped())

	viaInterface := awl.MustResolve[Store](in)
	direct := awl.MustResolve[*MemStore](in)

	// The cache is keyed by request key, not by implementation type.
	if viaInterface == Store(direct) {
		t.Fatal("expected distinct cached instances per request key")
	}
	if direct != awl.MustResolve[*MemStore](in) {
		t.Fatal("expected the direct key to stay cached")
	}
}

func TestZeroArgumentFallback(t *testing.T) {
	t.Parallel()

	in := awl.New()

	s, err := awl.Resolve[*DiskStore](in)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if s == nil || s.Path != "" {
		t.Fatalf("expected zero-valued instance, got %+v", s)
	}
}

func TestValueStructResolution(t *testing.T) {
	t.Parallel()

	in := awl.New()

	cfg, err := awl.Resolve[Config](in)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("expected zero value, got %+v", cfg)
	}
}

func TestConstructorInjection(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.BindInstance(in, &Config{Host: "db.local"})
	awl.MustDescribe[*Service](in, awl.Constructor(NewService))

	svc, err := awl.Resolve[*Service](in)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if svc.Store == nil || svc.Store.Kind() != "mem" {
		t.Errorf("expected injected mem store, got %v", svc.Store)
	}
	if svc.Cfg == nil || svc.Cfg.Host != "db.local" {
		t.Errorf("expected injected config, got %v", svc.Cfg)
	}
}

func TestConstructorQualifiedParams(t *testing.T) {
	t.Parallel()

	type archive struct {
		store Store
	}

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.Bind[Store, *DiskStore](in, awl.Named("cold"))
	awl.MustDescribe[*archive](in, awl.Constructor(
		func(s Store) *archive { return &archive{store: s} },
		awl.Param(awl.Named("cold")),
	))

	a := awl.MustResolve[*archive](in)
	if a.store.Kind() != "disk" {
		t.Errorf("expected the qualified binding, got %q", a.store.Kind())
	}
}

func TestConstructorErrorIsWrapped(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	in := awl.New()
	awl.MustDescribe[*MemStore](in, awl.Constructor(
		func() (*MemStore, error) { return nil, boom },
	))

	_, err := awl.Resolve[*MemStore](in)
	if !awl.IsConstructionFailed(err) {
		t.Fatalf("expected construction failure, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected original cause in the chain, got %v", err)
	}
}

func TestConstructorPanicIsWrapped(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.MustDescribe[*MemStore](in, awl.Constructor(
		func() *MemStore { panic("bad wiring") },
	))

	_, err := awl.Resolve[*MemStore](in)
	if !awl.IsConstructionFailed(err) {
		t.Fatalf("expected construction failure, got %v", err)
	}
}

func TestUnboundInterfaceIsUnresolvable(t *testing.T) {
	t.Parallel()

	in := awl.New()

	_, err := awl.Resolve[Store](in)
	if !awl.IsUnresolvable(err) {
		t.Fatalf("expected unresolvable error, got %v", err)
	}
}

func TestNoConstructionPathKinds(t *testing.T) {
	t.Parallel()

	in := awl.New()

	if _, err := awl.Resolve[func()](in); !awl.IsNoConstructor(err) {
		t.Errorf("expected no-constructor error for func kind, got %v", err)
	}
	if _, err := awl.Resolve[int](in); !awl.IsNoConstructor(err) {
		t.Errorf("expected no-constructor error for int kind, got %v", err)
	}
}

func TestQualifierDisambiguation(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.Bind[Store, *DiskStore](in, awl.Named("cold"))

	hot := awl.MustResolve[Store](in)
	cold := awl.MustResolve[Store](in, awl.Named("cold"))

	if hot.Kind() != "mem" || cold.Kind() != "disk" {
		t.Errorf("expected mem/disk, got %s/%s", hot.Kind(), cold.Kind())
	}
}

func TestRebindingLastWriteWins(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.Bind[Store, *DiskStore](in)

	if got := awl.MustResolve[Store](in); got.Kind() != "disk" {
		t.Errorf("expected last binding to win, got %q", got.Kind())
	}
}

func TestNonGenericSurface(t *testing.T) {
	t.Parallel()

	storeType := reflect.TypeOf((*Store)(nil)).Elem()

	in := awl.New()
	in.BindType(storeType, reflect.TypeOf(&MemStore{}))

	v, err := in.ResolveType(storeType)
	if err != nil {
		t.Fatalf("ResolveType failed: %v", err)
	}
	if _, ok := v.(*MemStore); !ok {
		t.Fatalf("expected *MemStore, got %T", v)
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.BindInstance(in, &Config{})

	if !awl.Has[Store](in) || !awl.Has[*Config](in) {
		t.Error("expected registered keys to be present")
	}
	if awl.Has[Store](in, awl.Named("cold")) {
		t.Error("expected qualified key to be absent")
	}
	if awl.Has[*DiskStore](in) {
		t.Error("expected unregistered key to be absent")
	}
}

func TestKeys(t *testing.T) {
	t.Parallel()

	in := awl.New()
	awl.Bind[Store, *MemStore](in)
	awl.BindInstance(in, &Config{})

	ks := in.Keys()
	if len(ks) != 2 {
		t.Fatalf("expected 2 keys, got %v", ks)
	}
	if in.Size() != 2 {
		t.Errorf("expected size 2, got %d", in.Size())
	}
}

func TestResolveObserverSeesRecursiveResolutions(t *testing.T) {
	t.Parallel()

	var seen []string
	in := awl.New(awl.WithResolveObserver(func(key string, _ time.Duration, err error) {
		if err == nil {
			seen = append(seen, key)
		}
	}))

	awl.Bind[Store, *MemStore](in)
	awl.BindInstance(in, &Config{})
	awl.MustDescribe[*Service](in, awl.Constructor(NewService))

	awl.MustResolve[*Service](in)

	if len(seen) != 3 {
		t.Fatalf("expected 3 observed resolutions, got %v", seen)
	}
	joined := strings.Join(seen, " ")
	for _, frag := range []string{"Service", "Store", "Config"} {
		if !strings.Contains(joined, frag) {
			t.Errorf("expected observation of %s in %v", frag, seen)
		}
	}
}

func TestMustResolvePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	in := awl.New()
	awl.MustResolve[Store](in)
}

func TestErrorRendering(t *testing.T) {
	t.Parallel()

	in := awl.New()
	_, err := awl.Resolve[Store](in)
	if err == nil {
		t.Fatal("expected error")
	}

	msg := err.Error()
	if !strings.Contains(msg, "UNRESOLVABLE") {
		t.Errorf("expected code in message, got %q", msg)
	}
	if !strings.Contains(msg, "Store") {
		t.Errorf("expected offending key in message, got %q", msg)
	}
}

func TestBadDescriptorSurfacesOnDescribe(t *testing.T) {
	t.Parallel()

	in := awl.New()
	err := awl.Describe[*MemStore](in, awl.Constructor(42))
	if !awl.IsBadDescriptor(err) {
		t.Fatalf("expected bad descriptor error, got %v", err)
	}
}

func ExampleResolve() {
	in := awl.New()
	awl.Bind[Store, *MemStore](in)

	store := awl.MustResolve[Store](in)
	fmt.Println(store.Kind())
	// Output: mem
}
