package request

import (
	"io"

	"github.com/rs/zerolog"
)

// readChunk is the scratch-buffer size used when pulling bytes from a
// blocking io.Reader to feed the (non-blocking) StateMachine.
const readChunk = 4096

// Option configures a StateMachine constructed by FromReader.
type Option func(*StateMachine)

// WithMaxURILength overrides the default 1024-byte bound on a request
// line that has no line terminator yet.
func WithMaxURILength(n int) Option {
	return func(sm *StateMachine) { sm.MaxURILength = n }
}

// WithLogger attaches a zerolog.Logger for protocol diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(sm *StateMachine) { sm.Log = log }
}

// FromReader reads from r, feeding the bytes to a fresh StateMachine
// until the request is complete or a fatal error is raised. It exists
// for callers (the Server, tests) that
// want the simplicity of a blocking read loop on top of the
// non-blocking core; the core itself never calls r.Read.
func FromReader(r io.Reader, opts ...Option) (*Request, error) {
	sm := New()
	for _, opt := range opts {
		opt(sm)
	}

	buf := make([]byte, readChunk)
	for !sm.Events().MessageComplete {
		n, err := r.Read(buf)
		if n > 0 {
			if feedErr := sm.Feed(buf[:n]); feedErr != nil {
				return nil, feedErr
			}
		}
		if err != nil {
			if err == io.EOF {
				if sm.Events().MessageComplete {
					break
				}
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}

	if err := sm.HTTPError(); err != nil {
		return nil, err
	}
	return sm.Request(), nil
}
