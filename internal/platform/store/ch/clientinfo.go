package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo labels connections in system.query_log so server-side
// investigation can tell which binary issued a query. role is the process
// role ("api", "driftcheck"), tag the deploy tag.
func BuildClientInfo(role, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()

	type kv = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []kv{
		{Name: "apiwarden", Version: tidy(tag)},
		{Name: "role", Version: tidy(role)},
		{Name: "go", Version: tidy(runtime.Version())},
		{Name: "commit", Version: tidy(vcsShortSHA())},
		{Name: "host", Version: tidy(host)},
	}}
}

func vcsShortSHA() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return "unknown"
}

func tidy(s string) string { return strings.TrimSpace(s) }
