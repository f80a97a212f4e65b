package module

import "sync"

// Process-wide port registry. Binaries register each module's ports during
// bootstrap so later modules can look up collaborators by name.
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register publishes ports under a module name. Re-registering replaces
// the previous entry.
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs looks up a module's ports and asserts them to T. ok is false on
// a missing name and on a type mismatch alike.
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, found := reg[name]
	mu.RUnlock()

	var zero T
	if !found {
		return zero, false
	}
	out, ok := v.(T)
	if !ok {
		return zero, false
	}
	return out, true
}

// Reset empties the registry between tests.
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
