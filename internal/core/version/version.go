// Package version exposes build identity for the meta endpoints.
package version

// BuildInfo is the version block reported by /meta/version.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Stamped at build time:
//
//	-ldflags "-X 'apiwarden/internal/core/version.version=v0.1.0' \
//	          -X 'apiwarden/internal/core/version.commit=abcd123' \
//	          -X 'apiwarden/internal/core/version.date=2026-08-29'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the stamped build identity.
func Info() BuildInfo {
	return BuildInfo{
		Service: "apiwarden-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}
