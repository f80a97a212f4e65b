package modkit

import (
	"testing"

	phttp "apiwarden/internal/platform/net/http"
)

// fakeModule records calls so the Module surface can be exercised
type fakeModule struct {
	mounted int
	ports   any
	name    string
}

func (m *fakeModule) MountRoutes(phttp.Router) { m.mounted++ }
func (m *fakeModule) Ports() any               { return m.ports }
func (m *fakeModule) Name() string             { return m.name }

var _ Module = (*fakeModule)(nil)

func TestModuleSurface(t *testing.T) {
	t.Parallel()

	m := &fakeModule{name: "ratelimit", ports: "ports-bundle"}

	var r phttp.Router
	m.MountRoutes(r)
	m.MountRoutes(r)

	if m.mounted != 2 {
		t.Fatalf("MountRoutes calls = %d, want 2", m.mounted)
	}
	if m.Name() != "ratelimit" || m.Ports() != "ports-bundle" {
		t.Fatalf("surface values: name=%q ports=%v", m.Name(), m.Ports())
	}
}

func TestBuilderComposition(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, opts ...Option) Module {
		built := Build(opts...)
		return &fakeModule{name: built.Name}
	}

	m := b(Deps{}, WithName("compliance"))
	if m.Name() != "compliance" {
		t.Fatalf("built module name = %q", m.Name())
	}
}
