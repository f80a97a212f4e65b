package module

import "reflect"

// PortSet marks a module's exported port bundle. Modules define concrete
// interface types and return them, or a struct of them, from Ports.
type PortSet = any

// PortsOf extracts an interface T from a module's Ports value. The value
// itself is checked first, then the exported fields of a struct bundle.
// ok is false when nothing satisfies T.
func PortsOf[T any](m Module) (t T, ok bool) {
	p := m.Ports()
	if p == nil {
		return t, false
	}
	if v, hit := p.(T); hit {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return t, false
	}
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, hit := f.Interface().(T); hit {
			return v, true
		}
	}
	return t, false
}

// MustPortsOf panics with the module name when the port is absent, which
// turns a miswired boot into an immediate failure.
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: requested port not found on module " + m.Name())
	}
	return v
}
