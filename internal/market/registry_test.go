package market

import (
	"errors"
	"testing"
)

func TestRegistryOneStorefrontPerSeller(t *testing.T) {
	sink := &CollectEvents{}
	reg := NewRegistry(kindMoment, sink)

	first, err := reg.Create(11)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := reg.Create(11); !errors.Is(err, ErrStorefrontExists) {
		t.Fatalf("expected ErrStorefrontExists, got %v", err)
	}
	got, ok := reg.Get(11)
	if !ok || got != first {
		t.Fatal("expected to get back the same storefront")
	}
	if _, ok := reg.Get(12); ok {
		t.Fatal("unknown seller must have no storefront")
	}

	second, err := reg.Create(12)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.ID() == first.ID() {
		t.Fatal("storefront ids must be distinct")
	}
}

func TestRegistryCreateEmitsEvent(t *testing.T) {
	sink := &CollectEvents{}
	reg := NewRegistry(kindMoment, sink)
	s, err := reg.Create(1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sink.Events) != 1 {
		t.Fatalf("expected one event, got %d", len(sink.Events))
	}
	created, ok := sink.Events[0].(StorefrontCreated)
	if !ok || created.StorefrontID != s.ID() {
		t.Fatalf("unexpected event %+v", sink.Events[0])
	}
}

func TestRegistryDestroy(t *testing.T) {
	sink := &CollectEvents{}
	reg := NewRegistry(kindMoment, sink)
	if err := reg.Destroy(5); !errors.Is(err, ErrNoStorefront) {
		t.Fatalf("expected ErrNoStorefront, got %v", err)
	}
	if _, err := reg.Create(5); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := reg.Destroy(5); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if _, ok := reg.Get(5); ok {
		t.Fatal("destroyed storefront must be gone")
	}
	// The seller can start over with a fresh storefront.
	if _, err := reg.Create(5); err != nil {
		t.Fatalf("recreate after destroy: %v", err)
	}
}
