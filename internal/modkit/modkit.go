package modkit

import (
	phttp "apiwarden/internal/platform/net/http"
)

// Module is the surface a service vertical exposes to main. Kept minimal
// so verticals only couple through ports.
type Module interface {
	// MountRoutes registers the module's endpoints on the router seam.
	MountRoutes(r phttp.Router)
	// Ports exposes the module's collaborator surface for cross wiring.
	Ports() any
	Name() string
}

// Builder is the constructor shape modules export, New(deps, opts...).
type Builder func(Deps, ...Option) Module
