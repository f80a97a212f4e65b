// Package httpkit is what modules import for routing and handlers. It
// re-exports the platform http seam so verticals never reach into
// internal/platform/net/http themselves.
package httpkit

import (
	"net/http"

	phttp "apiwarden/internal/platform/net/http"
	"apiwarden/internal/platform/net/http/bind"
)

type (
	Envelope = phttp.Envelope
	Response = phttp.Response
	Handler  = phttp.Handler
	Router   = phttp.Router
)

// OK wraps data in a 200 response.
func OK(data any) Response { return phttp.OK(data) }

// Created wraps data in a 201 response.
func Created(data any) Response { return phttp.Created(data) }

// JSON binds and validates the request body as T before fn runs, so every
// bound body passes its validate tags exactly once.
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

// Call adapts a handler with no request body.
func Call(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return respond(fn(r))
	})
}

// Handle adapts a Response-returning function directly.
func Handle(fn func(*http.Request) Response) Handler {
	return phttp.Handle(fn)
}

// respond lets handlers return either a plain value or a prebuilt Response.
func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(phttp.Response); ok {
		return resp
	}
	return phttp.OK(out)
}
