package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func hit(r Router, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
	return rr
}

func marker(header string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
			w.Header().Set(header, "1")
			next.ServeHTTP(w, req)
		})
	}
}

func textHandler(status int, body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestAdaptChi_MiddlewareScoping(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(marker("X-Root"))
	r.Get("/check", textHandler(200, "root"))

	r.Group(func(gr Router) {
		if gr.Mux() == nil {
			t.Fatal("group Mux() is nil")
		}
		gr.Use(marker("X-Group"))
		gr.Get("/grouped/check", textHandler(200, "grouped"))
	})

	r.Route("/reports", func(sr Router) {
		if sr.Mux() == nil {
			t.Fatal("route Mux() is nil")
		}
		sr.Use(marker("X-Scope"))
		sr.Get("/latest", textHandler(200, "latest"))
	})

	// root middleware applies everywhere; scoped middleware stays scoped
	rr := hit(r, stdhttp.MethodGet, "/check")
	if rr.Code != 200 || rr.Body.String() != "root" || rr.Header().Get("X-Root") != "1" {
		t.Fatalf("/check: code=%d body=%q root=%q", rr.Code, rr.Body.String(), rr.Header().Get("X-Root"))
	}
	if rr.Header().Get("X-Group") != "" || rr.Header().Get("X-Scope") != "" {
		t.Fatal("scoped middleware leaked to a root route")
	}

	rr = hit(r, stdhttp.MethodGet, "/grouped/check")
	if rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Group") != "1" {
		t.Fatalf("/grouped/check headers: %v", rr.Header())
	}

	rr = hit(r, stdhttp.MethodGet, "/reports/latest")
	if rr.Body.String() != "latest" || rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Scope") != "1" {
		t.Fatalf("/reports/latest: body=%q headers=%v", rr.Body.String(), rr.Header())
	}
}

func TestAdaptChi_AllVerbsRootAndSub(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())

	mount := func(target Router, base string) {
		target.Get(base+"/get", textHandler(200, "g"))
		target.Post(base+"/post", textHandler(201, ""))
		target.Put(base+"/put", textHandler(200, ""))
		target.Patch(base+"/patch", textHandler(200, ""))
		target.Delete(base+"/delete", textHandler(204, ""))
		target.Head(base+"/head", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.Header().Set("X-Head", "1")
		})
		target.Options(base+"/options", textHandler(204, ""))
		target.Handle(base+"/std", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.WriteHeader(200)
			_, _ = w.Write([]byte("std"))
		}))
	}

	mount(r, "/root")
	r.Group(func(gr Router) { mount(gr, "/sub") })

	for _, base := range []string{"/root", "/sub"} {
		cases := []struct {
			method string
			path   string
			want   int
		}{
			{stdhttp.MethodGet, base + "/get", 200},
			{stdhttp.MethodPost, base + "/post", 201},
			{stdhttp.MethodPut, base + "/put", 200},
			{stdhttp.MethodPatch, base + "/patch", 200},
			{stdhttp.MethodDelete, base + "/delete", 204},
			{stdhttp.MethodHead, base + "/head", 200},
			{stdhttp.MethodOptions, base + "/options", 204},
			{stdhttp.MethodGet, base + "/std", 200},
		}
		for _, c := range cases {
			if rr := hit(r, c.method, c.path); rr.Code != c.want {
				t.Fatalf("%s %s = %d, want %d", c.method, c.path, rr.Code, c.want)
			}
		}

		if rr := hit(r, stdhttp.MethodHead, base+"/head"); rr.Body.Len() != 0 || rr.Header().Get("X-Head") != "1" {
			t.Fatalf("HEAD %s/head: len=%d hdr=%q", base, rr.Body.Len(), rr.Header().Get("X-Head"))
		}
	}
}

func TestAdaptChi_NestedRoutesAndGroups(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())

	r.Route("/api", func(sr Router) {
		sr.Route("/v1", func(nr Router) {
			nr.Get("/usage", textHandler(200, "usage"))
		})
		sr.Group(func(gr Router) {
			gr.Get("/grouped", textHandler(200, "grouped"))
		})
	})

	rr := hit(r, stdhttp.MethodGet, "/api/v1/usage")
	if rr.Code != 200 || rr.Body.String() != "usage" {
		t.Fatalf("/api/v1/usage: %d %q", rr.Code, rr.Body.String())
	}
	rr = hit(r, stdhttp.MethodGet, "/api/grouped")
	if rr.Code != 200 || rr.Body.String() != "grouped" {
		t.Fatalf("/api/grouped: %d %q", rr.Code, rr.Body.String())
	}
}
