// Package httpstatus is the status taxonomy external collaborator: typed,
// fatal HTTP errors the request parser raises, each carrying the status
// that belongs on the wire.
package httpstatus

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// HTTPStatusError is the common supertype of every fatal status error the
// core can raise.
type HTTPStatusError interface {
	error
	StatusCode() int
}

// StatusError is the concrete HTTPStatusError implementation.
type StatusError struct {
	Code   int
	Reason string
	cause  error
}

func (e *StatusError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%d %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("%d %s: %s", e.Code, e.Reason, e.cause.Error())
}

// StatusCode returns the numeric HTTP status code.
func (e *StatusError) StatusCode() int { return e.Code }

// Unwrap exposes the cause the status was built with: an error carrying
// the detail text. The constructors build it from that text alone, so a
// protoerr sentinel that led to the status is not reachable through it.
func (e *StatusError) Unwrap() error { return e.cause }

func newStatus(code int, reason, detail string) *StatusError {
	return &StatusError{Code: code, Reason: reason, cause: errors.New(detail)}
}

// BadRequest builds a 400 Bad Request: malformed request line or headers,
// invalid Content-Length, malformed chunk framing, a body that exceeds
// its declared length, malformed or undeclared trailers, residual input
// after message completion, or an invalid request-target URI.
func BadRequest(detail string) error { return newStatus(400, "Bad Request", detail) }

// LengthRequired builds a 411 Length Required: body bytes are present
// with neither Content-Length nor Transfer-Encoding to frame them.
func LengthRequired(detail string) error { return newStatus(411, "Length Required", detail) }

// RequestURITooLong builds a 414 URI Too Long: the request-line buffer
// exceeded MaxURILength before a line terminator appeared.
func RequestURITooLong(detail string) error { return newStatus(414, "URI Too Long", detail) }

// NotImplemented builds a 501 Not Implemented: a Transfer-Encoding other
// than chunked was requested.
func NotImplemented(detail string) error { return newStatus(501, "Not Implemented", detail) }

// As reports whether err is (or wraps) an HTTPStatusError, returning it
// if so.
func As(err error) (HTTPStatusError, bool) {
	var se *StatusError
	if stderrors.As(err, &se) {
		return se, true
	}
	return nil, false
}
