package http

import "net/http"

// Handler is the function shape every route in the project uses.
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the mounting surface modules see. It hides the concrete chi
// router so handlers never import it directly.
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Head(path string, h Handler)
	Options(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux exposes the router as a plain handler for serving and tests.
	Mux() http.Handler
}
