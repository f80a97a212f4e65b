// Package net carries the request-id context plumbing shared by the
// middleware and the response envelope.
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// WithRequest stores reqID under chi's key, so chi middleware and our own
// helpers read the same value.
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, reqID)
}

// RequestID reads the request id off the context, empty when unset.
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}
