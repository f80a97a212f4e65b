package service

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"time"
)

// Transport observes upstream responses and feeds them to a monitor
// It re-buffers bodies so callers read them untouched
type Transport struct {
	// Base performs the request; nil means http.DefaultTransport
	Base http.RoundTripper

	Monitor *Monitor
}

// RoundTrip implements http.RoundTripper
// Transport errors are recorded as failures and returned unchanged
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	rt := time.Since(start)

	if err != nil {
		t.Monitor.RecordTransportFailure(req.Context(), req.Method, req.URL.Path, rt)
		return nil, err
	}

	var body any
	if isJSON(resp.Header.Get("Content-Type")) && resp.Body != nil {
		raw, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		resp.Body = io.NopCloser(bytes.NewReader(raw))
		if readErr == nil {
			// a body that claims JSON but does not parse is logged unjudged
			_ = json.Unmarshal(raw, &body)
		}
	}

	t.Monitor.Record(req.Context(), req.Method, req.URL.Path, resp.StatusCode, body, rt)
	return resp, nil
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || mt == "application/problem+json"
}
