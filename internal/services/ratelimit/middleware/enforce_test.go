package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"apiwarden/internal/services/ratelimit/domain"
	rlsvc "apiwarden/internal/services/ratelimit/service"
	rlstore "apiwarden/internal/services/ratelimit/store"
)

func newLimiter(t *testing.T) *rlsvc.Limiter {
	t.Helper()
	local := rlstore.NewMemory(0)
	t.Cleanup(func() { _ = local.Close() })
	return rlsvc.New(nil, local, rlsvc.WithRegisterer(prometheus.NewRegistry()))
}

func doReq(h http.Handler, ip string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestEnforce_HeadersOnAllowedRequests(t *testing.T) {
	h := Enforce(newLimiter(t), domain.ClassAuth)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := doReq(h, "203.0.113.7")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Fatalf("limit header = %q", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Fatalf("remaining header = %q", got)
	}
	reset, err := strconv.ParseInt(w.Header().Get("X-RateLimit-Reset"), 10, 64)
	if err != nil {
		t.Fatalf("reset header: %v", err)
	}
	if min := time.Now().Unix(); reset < min {
		t.Fatalf("reset %d is in the past (now %d)", reset, min)
	}
	if w.Header().Get("Retry-After") != "" {
		t.Fatalf("allowed response carries Retry-After")
	}
}

func TestEnforce_DeniesOverQuota(t *testing.T) {
	var handled int
	h := Enforce(newLimiter(t), domain.ClassAuth)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handled++
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 10; i++ {
		doReq(h, "203.0.113.7")
	}
	w := doReq(h, "203.0.113.7")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if handled != 10 {
		t.Fatalf("denied request reached the handler, handled=%d", handled)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Fatalf("remaining header = %q", got)
	}

	retry, err := strconv.ParseInt(w.Header().Get("Retry-After"), 10, 64)
	if err != nil {
		t.Fatalf("Retry-After: %v", err)
	}
	if retry < 1 || retry > int64((15*time.Minute).Seconds()) {
		t.Fatalf("Retry-After = %d", retry)
	}

	var envelope struct {
		StatusCode int    `json:"status_code"`
		Code       int    `json:"code"`
		Error      string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("denial body is not an envelope: %v", err)
	}
	if envelope.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("envelope status_code = %d", envelope.StatusCode)
	}
	if envelope.Error == "" {
		t.Fatalf("envelope lacks an error message")
	}
}

func TestEnforce_ClientsDoNotShareWindows(t *testing.T) {
	h := Enforce(newLimiter(t), domain.ClassAuth)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 11; i++ {
		doReq(h, "203.0.113.7")
	}
	if w := doReq(h, "198.51.100.2"); w.Code != http.StatusNoContent {
		t.Fatalf("second client hit first client's limit: %d", w.Code)
	}
}

func TestRetryAfterSeconds_FloorOfOne(t *testing.T) {
	if got := retryAfterSeconds(time.Now().Add(-time.Minute)); got != 1 {
		t.Fatalf("past reset retry = %d", got)
	}
	if got := retryAfterSeconds(time.Now().Add(90 * time.Second)); got < 90 || got > 91 {
		t.Fatalf("future reset retry = %d", got)
	}
}
