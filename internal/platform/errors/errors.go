// Package errors carries the structured error type shared by every service.
// Import it as perr to avoid clashing with the stdlib errors package.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for clients and for the HTTP mapping.
// Codes travel on the wire, so existing values never change meaning.
type ErrorCode uint16

const (
	// ErrorCodeUnknown covers anything not classified below
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks errors synthesized from recovered panics
	ErrorCodePanic

	// ErrorCodeUnavailable marks transient backend trouble worth retrying
	ErrorCodeUnavailable

	// ErrorCodeTooManyRequests marks a rate limit denial
	ErrorCodeTooManyRequests

	// ErrorCodeConflict marks write conflicts other than duplicate keys
	ErrorCodeConflict

	// ErrorCodeForbidden marks a request the caller may not perform
	ErrorCodeForbidden

	// ErrorCodeInvalidArgument marks bad request parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation marks input that failed validation rules
	ErrorCodeValidation

	// ErrorCodeJSON marks malformed or unparseable JSON bodies
	ErrorCodeJSON

	// ErrorCodeNotFound marks a missing resource
	ErrorCodeNotFound

	// ErrorCodeDuplicateKey marks a unique constraint violation
	ErrorCodeDuplicateKey

	// ErrorCodeDB marks database errors with no finer classification
	ErrorCodeDB
)

var httpByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeConflict:        http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeForbidden:       http.StatusForbidden,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
}

// HTTPStatusCode maps an ErrorCode to its HTTP status.
// Unknown, panic, and DB errors all surface as 500.
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := httpByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is the shared sentinel for missing rows and resources
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error pairs a machine-facing code with a developer-facing message.
// field names the offending input field when validation is involved,
// and orig keeps the wrapped cause for errors.Is/As chains.
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the JSON shape of an error inside the response envelope
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap exposes the cause to the stdlib errors helpers
func (e *Error) Unwrap() error { return e.orig }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, empty when not set
func (e *Error) Field() string { return e.field }

// WireFrom converts any error into its wire shape. Foreign errors map
// to ErrorCodeUnknown with their message passed through; nil maps to
// the zero Wire.
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root walks the Unwrap chain to the deepest cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts the ErrorCode anywhere in the chain, else Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus maps any error to an HTTP status via its code
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As returns (*Error, true) when err or any wrapped cause is ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithField returns a copy of err carrying the field name.
// Foreign errors pass through unchanged.
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// New builds an *Error with a code and a fixed message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf builds an *Error with a code and a formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap builds an *Error around a cause
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is the formatted variant of Wrap
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// NotFoundf builds a not-found error
func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }

// InvalidArgf builds an invalid-argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// JSONErrf builds a JSON parse or shape error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf builds an error for a recovered panic
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// RateLimitedf builds a rate limit denial error
func RateLimitedf(format string, a ...any) error { return Newf(ErrorCodeTooManyRequests, format, a...) }
