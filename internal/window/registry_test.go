package window

import "testing"

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := NewDispatcher(nil, Handlers{})
	b := NewDispatcher(nil, Handlers{})

	r.Bind(r.Reserve(a), 0x10)
	r.Bind(r.Reserve(b), 0x20)
	if got, ok := r.Lookup(0x10); !ok || got != a {
		t.Fatal("lookup of 0x10 failed")
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	r.Unregister(0x10)
	if _, ok := r.Lookup(0x10); ok {
		t.Fatal("0x10 still registered")
	}
	if got, ok := r.Lookup(0x20); !ok || got != b {
		t.Fatal("0x20 lost after unregistering 0x10")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryReserveBind(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(nil, Handlers{})

	key := r.Reserve(d)
	if _, ok := r.Lookup(key); ok {
		t.Fatal("reserved key must not be visible before Bind")
	}
	if r.Len() != 0 {
		t.Fatalf("pending reservation counted as a window: Len = %d", r.Len())
	}

	got, ok := r.Bind(key, 0xABC)
	if !ok || got != d {
		t.Fatal("Bind failed")
	}
	if got, ok := r.Lookup(0xABC); !ok || got != d {
		t.Fatal("bound window not found")
	}
	if _, ok := r.Bind(key, 0xDEF); ok {
		t.Fatal("a reservation must only bind once")
	}

	other := r.Reserve(d)
	r.Release(other)
	if _, ok := r.Bind(other, 0x123); ok {
		t.Fatal("released reservation bound")
	}
}
