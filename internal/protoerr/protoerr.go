// Package protoerr holds the internal, untyped-by-HTTP-status protocol
// errors raised by the core sub-parsers. The state machine driver is the
// only place that ever sees these directly; it translates each one into
// an httpstatus.HTTPStatusError at the stage boundary.
package protoerr

import "github.com/pkg/errors"

// Sentinel protocol errors. Use errors.Is against these after unwrapping
// a wrapped detail message produced by Wrap.
var (
	ErrInvalidLine   = errors.New("invalid line")
	ErrInvalidHeader = errors.New("invalid header")
	ErrInvalidBody   = errors.New("invalid body")
	ErrInvalidURI    = errors.New("invalid uri")
)

// Wrap attaches a human-readable detail message to one of the sentinel
// errors above, preserving it for errors.Is/errors.As at the driver
// boundary and for the stack trace github.com/pkg/errors captures.
func Wrap(sentinel error, detail string) error {
	return errors.Wrap(sentinel, detail)
}
