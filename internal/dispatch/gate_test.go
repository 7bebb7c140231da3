package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-triggers/internal/sourceconfig"
)

type countingLookup struct {
	inner sourceconfig.Lookup
	calls int
}

func (c *countingLookup) Get(ctx context.Context, name string) (*sourceconfig.Source, error) {
	c.calls++
	return c.inner.Get(ctx, name)
}

type failingLookup struct{}

func (failingLookup) Get(context.Context, string) (*sourceconfig.Source, error) {
	return nil, errors.New("provider unreachable")
}

func TestNewGateRequiresSourceName(t *testing.T) {
	if _, err := NewGate(context.Background(), "", sourceconfig.NewMemoryRepository()); !errors.Is(err, ErrSourceNameRequired) {
		t.Fatalf("expected ErrSourceNameRequired, got %v", err)
	}
}

func TestGateResolvesStoredFlag(t *testing.T) {
	ctx := context.Background()
	repo := sourceconfig.NewMemoryRepository()

	cases := []struct {
		name    string
		enabled bool
	}{
		{name: "EnabledSource", enabled: true},
		{name: "DisabledSource", enabled: false},
	}
	for _, tc := range cases {
		if _, err := repo.Upsert(ctx, sourceconfig.Source{Name: tc.name, Enabled: tc.enabled}); err != nil {
			t.Fatalf("upsert %s: %v", tc.name, err)
		}
	}

	for _, tc := range cases {
		gate, err := NewGate(ctx, tc.name, repo)
		if err != nil {
			t.Fatalf("NewGate(%s) error = %v", tc.name, err)
		}
		if gate.Enabled() != tc.enabled {
			t.Fatalf("gate %s: expected enabled=%v, got %v", tc.name, tc.enabled, gate.Enabled())
		}
	}
}

func TestGateDefaultsToEnabledWhenUnconfigured(t *testing.T) {
	gate, err := NewGate(context.Background(), "ContactSource", sourceconfig.NewMemoryRepository())
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}
	if !gate.Enabled() {
		t.Fatal("expected unconfigured source to resolve enabled")
	}
}

func TestGateFailsOpenOnLookupError(t *testing.T) {
	gate, err := NewGate(context.Background(), "AccountSource", failingLookup{})
	if err != nil {
		t.Fatalf("expected lookup failure to be absorbed, got %v", err)
	}
	if !gate.Enabled() {
		t.Fatal("expected failed lookup to resolve enabled")
	}
}

func TestGateResolvesExactlyOnce(t *testing.T) {
	ctx := context.Background()
	repo := sourceconfig.NewMemoryRepository()
	if _, err := repo.Upsert(ctx, sourceconfig.Source{Name: "AccountSource", Enabled: false}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	lookup := &countingLookup{inner: repo}
	gate, err := NewGate(ctx, "AccountSource", lookup)
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}
	if lookup.calls != 1 {
		t.Fatalf("expected one lookup at construction, got %d", lookup.calls)
	}

	for i := 0; i < 5; i++ {
		if gate.Enabled() {
			t.Fatal("expected cached resolution to stay disabled")
		}
	}
	if lookup.calls != 1 {
		t.Fatalf("expected Enabled() to avoid re-query, got %d lookups", lookup.calls)
	}
}

func TestGateIgnoresConfigEditsAfterConstruction(t *testing.T) {
	ctx := context.Background()
	repo := sourceconfig.NewMemoryRepository()
	if _, err := repo.Upsert(ctx, sourceconfig.Source{Name: "AccountSource", Enabled: false}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	gate, err := NewGate(ctx, "AccountSource", repo)
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}

	if _, err := repo.Upsert(ctx, sourceconfig.Source{Name: "AccountSource", Enabled: true}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if gate.Enabled() {
		t.Fatal("expected gate to keep the flag resolved at construction")
	}
}

func TestSourceEnabledStatelessLookup(t *testing.T) {
	ctx := context.Background()
	repo := sourceconfig.NewMemoryRepository()
	if _, err := repo.Upsert(ctx, sourceconfig.Source{Name: "AccountSource", Enabled: false}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	lookup := &countingLookup{inner: repo}
	if SourceEnabled(ctx, lookup, "AccountSource") {
		t.Fatal("expected stored disabled flag to resolve false")
	}
	if !SourceEnabled(ctx, lookup, "ContactSource") {
		t.Fatal("expected unconfigured source to resolve true")
	}
	if !SourceEnabled(ctx, failingLookup{}, "AccountSource") {
		t.Fatal("expected failed lookup to resolve true")
	}
	if lookup.calls != 2 {
		t.Fatalf("expected one lookup per call, got %d", lookup.calls)
	}
}
