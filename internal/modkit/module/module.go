// Package module holds the module contract and the process port registry.
// It sits below modkit so port consumers avoid import knots.
package module

import (
	phttp "apiwarden/internal/platform/net/http"
)

// Module mirrors the modkit contract for code that only needs ports.
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
