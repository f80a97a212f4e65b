package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiAdapter bridges a chi router onto the platform Router. Groups and
// Routes wrap their subrouter in the same type, so nesting is uniform.
type chiAdapter struct{ r chi.Router }

// AdaptChi wraps a mux as a Router.
func AdaptChi(m *chi.Mux) Router { return chiAdapter{r: m} }

func (c chiAdapter) method(verb, p string, h Handler) {
	c.r.Method(verb, p, http.HandlerFunc(h))
}

func (c chiAdapter) Get(p string, h Handler)     { c.method(http.MethodGet, p, h) }
func (c chiAdapter) Post(p string, h Handler)    { c.method(http.MethodPost, p, h) }
func (c chiAdapter) Put(p string, h Handler)     { c.method(http.MethodPut, p, h) }
func (c chiAdapter) Patch(p string, h Handler)   { c.method(http.MethodPatch, p, h) }
func (c chiAdapter) Delete(p string, h Handler)  { c.method(http.MethodDelete, p, h) }
func (c chiAdapter) Head(p string, h Handler)    { c.method(http.MethodHead, p, h) }
func (c chiAdapter) Options(p string, h Handler) { c.method(http.MethodOptions, p, h) }

func (c chiAdapter) Handle(p string, h http.Handler)           { c.r.Handle(p, h) }
func (c chiAdapter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiAdapter) Group(fn func(Router)) {
	c.r.Group(func(sub chi.Router) { fn(chiAdapter{r: sub}) })
}

func (c chiAdapter) Route(pattern string, fn func(Router)) {
	c.r.Route(pattern, func(sub chi.Router) { fn(chiAdapter{r: sub}) })
}

// Mux exposes the underlying router as a handler, scoped to wherever this
// adapter sits in the tree.
func (c chiAdapter) Mux() http.Handler { return c.r }
