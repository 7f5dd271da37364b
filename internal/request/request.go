// Package request implements the core parser: the Request data model and
// the StateMachine driver that turns a byte stream into one, per RFC
// 7230 framing rules.
package request

import (
	"streamhttp/internal/bodysink"
	"streamhttp/internal/headermap"
	"streamhttp/internal/uri"
)

// Request is the aggregate built incrementally by a StateMachine. Only
// one StateMachine ever writes to a given Request.
type Request struct {
	Method    string
	Target    *uri.URI
	RawTarget string
	Major     int
	Minor     int
	Headers   *headermap.HeaderMap
	Body      bodysink.Sink

	trailers *headermap.HeaderMap
}

func newRequest() *Request {
	return &Request{
		Headers: headermap.New(),
		Body:    bodysink.NewMemory(),
	}
}
