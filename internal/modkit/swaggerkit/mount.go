package swaggerkit

import (
	"net/http"

	phttp "apiwarden/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the swagger UI at /api/docs/ with its spec at doc.json.
// Disabled mounts nothing, so production can turn the surface off.
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	// the UI assets require the trailing slash
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
