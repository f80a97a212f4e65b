package module

import (
	"sync"
	"testing"
)

type limiterPorts struct {
	Name string
	ID   int
}

func TestRegistry_RoundTrip(t *testing.T) {
	Reset()

	want := limiterPorts{Name: "ratelimit", ID: 1}
	Register("ratelimit", want)

	got, ok := PortsAs[limiterPorts]("ratelimit")
	if !ok {
		t.Fatal("registered name not found")
	}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestRegistry_MissingAndMismatched(t *testing.T) {
	Reset()

	if got, ok := PortsAs[limiterPorts]("absent"); ok || got != (limiterPorts{}) {
		t.Fatalf("missing name: ok=%v got=%v", ok, got)
	}

	Register("compliance", limiterPorts{Name: "compliance", ID: 2})
	if _, ok := PortsAs[int]("compliance"); ok {
		t.Fatal("type mismatch reported ok")
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	Reset()

	Register("svc", limiterPorts{Name: "first", ID: 1})
	Register("svc", limiterPorts{Name: "second", ID: 2})

	got, ok := PortsAs[limiterPorts]("svc")
	if !ok || got.Name != "second" || got.ID != 2 {
		t.Fatalf("after overwrite: ok=%v got=%v", ok, got)
	}
}

func TestRegistry_ResetClears(t *testing.T) {
	Reset()
	Register("x", limiterPorts{Name: "x", ID: 9})
	Reset()

	if _, ok := PortsAs[limiterPorts]("x"); ok {
		t.Fatal("entry survived Reset")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	Reset()

	const n = 100
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			Register("concurrent", limiterPorts{Name: "k", ID: i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_, _ = PortsAs[limiterPorts]("concurrent")
		}
	}()
	wg.Wait()

	got, ok := PortsAs[limiterPorts]("concurrent")
	if !ok || got.Name != "k" {
		t.Fatalf("after concurrent writes: ok=%v got=%v", ok, got)
	}
}
