package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"apiwarden/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestRequestLogContext_PassThrough(t *testing.T) {
	var sawID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawID = chimw.GetReqID(r.Context())
		w.WriteHeader(204)
	})

	h := middleware.RequestID()(middleware.RequestLogContext()(next))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rr.Code != 204 {
		t.Fatalf("expected 204 got %d", rr.Code)
	}
	if sawID == "" {
		t.Fatalf("request id not propagated to the handler context")
	}
}

func TestRequestLogContext_NoIDIsHarmless(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})
	rr := httptest.NewRecorder()
	middleware.RequestLogContext()(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rr.Code != 200 {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}
