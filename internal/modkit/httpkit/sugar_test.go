package httpkit

import (
	"net/http"
	"testing"

	phttp "apiwarden/internal/platform/net/http"
)

type mountRec struct {
	verb string
	path string
	h    phttp.Handler
}

// recordingRouter satisfies the platform Router surface and records
// every registration for assertions
type recordingRouter struct {
	recs []mountRec
}

func (f *recordingRouter) add(verb, path string, h phttp.Handler) {
	f.recs = append(f.recs, mountRec{verb: verb, path: path, h: h})
}

func (f *recordingRouter) Route(_ string, fn func(Router))          { fn(f) }
func (f *recordingRouter) Group(fn func(Router))                    { fn(f) }
func (f *recordingRouter) Use(_ ...func(http.Handler) http.Handler) {}
func (f *recordingRouter) Mux() http.Handler                        { return http.NewServeMux() }
func (f *recordingRouter) Handle(string, http.Handler)              {}
func (f *recordingRouter) Options(path string, h phttp.Handler)     { f.add("OPTIONS", path, h) }
func (f *recordingRouter) Head(path string, h phttp.Handler)        { f.add("HEAD", path, h) }
func (f *recordingRouter) Delete(path string, h phttp.Handler)      { f.add("DELETE", path, h) }
func (f *recordingRouter) Get(path string, h phttp.Handler)         { f.add("GET", path, h) }
func (f *recordingRouter) Post(path string, h phttp.Handler)        { f.add("POST", path, h) }
func (f *recordingRouter) Put(path string, h phttp.Handler)         { f.add("PUT", path, h) }
func (f *recordingRouter) Patch(path string, h phttp.Handler)       { f.add("PATCH", path, h) }

func TestSugar_MountsUnderExpectedVerbs(t *testing.T) {
	type body struct {
		Label string `json:"label"`
	}

	cases := []struct {
		name  string
		mount func(r Router)
		verb  string
		path  string
	}{
		{
			name:  "bodyless get",
			mount: func(r Router) { Get(r, "/usage", func(*http.Request) (any, error) { return "ok", nil }) },
			verb:  "GET",
			path:  "/usage",
		},
		{
			name: "post with bound body",
			mount: func(r Router) {
				PostJSON[body](r, "/check", func(*http.Request, body) (any, error) { return "ok", nil })
			},
			verb: "POST",
			path: "/check",
		},
		{
			name: "put with bound body",
			mount: func(r Router) {
				PutJSON[body](r, "/baseline", func(*http.Request, body) (any, error) { return "ok", nil })
			},
			verb: "PUT",
			path: "/baseline",
		},
	}

	for _, c := range cases {
		r := &recordingRouter{}
		c.mount(r)

		if len(r.recs) != 1 {
			t.Fatalf("%s: %d registrations, want 1", c.name, len(r.recs))
		}
		rec := r.recs[0]
		if rec.verb != c.verb || rec.path != c.path {
			t.Fatalf("%s: mounted %s %s, want %s %s", c.name, rec.verb, rec.path, c.verb, c.path)
		}
		if rec.h == nil {
			t.Fatalf("%s: nil handler", c.name)
		}
	}
}
