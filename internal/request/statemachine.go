package request

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"streamhttp/internal/buffer"
	"streamhttp/internal/headermap"
	"streamhttp/internal/httpstatus"
	"streamhttp/internal/linescan"
	"streamhttp/internal/protoerr"
)

// bodyMode records which body-framing discipline was selected for the
// message: none, Content-Length, or chunked transfer encoding.
type bodyMode uint8

const (
	bodyNone bodyMode = iota
	bodyLength
	bodyChunked
)

// stage is the top-level discriminant driving Feed's sequencing loop, a
// statically typed enum in place of dynamically set on_<state> flags.
type stage uint8

const (
	stageRequestLine stage = iota
	stageHeaders
	stageBodyFraming
	stageBody
	stageTrailers
	stageDone
	stageFinished
	stageError
)

// EventFlags is the read-only snapshot of the monotonic, set-once event
// flags marking passage through the parse stages. Once true, a field
// never reverts to false.
type EventFlags struct {
	RequestLineSeen   bool
	HeadersSeen       bool
	BodyStarted       bool
	BodyComplete      bool
	TrailersProcessed bool
	MessageComplete   bool
}

// StateMachine drives exactly one Request through the parse stages as
// bytes are fed to it. It performs no I/O and never blocks: Feed always
// returns once no further progress is possible with the data on hand.
type StateMachine struct {
	// RaiseErrors selects whether Feed returns a fatal error directly
	// (default) or only records it for retrieval via HTTPError.
	RaiseErrors bool
	// MaxURILength bounds the request-line buffer before its terminator
	// is seen, guarding against an unbounded line sent with no terminator.
	MaxURILength int
	// Log receives protocol-error and trailer-merge diagnostics. The
	// zero value is a disabled logger.
	Log zerolog.Logger

	buf   *buffer.Buffer
	term  []byte
	stage stage
	req   *Request
	err   error

	events EventFlags

	mode          bodyMode
	contentLength int64
	framer        *chunkFramer
}

// New returns a StateMachine ready to parse one request, with CRLF as
// the initial line terminator and the default 1024-byte URI bound.
func New() *StateMachine {
	return &StateMachine{
		RaiseErrors:  true,
		MaxURILength: 1024,
		Log:          zerolog.Nop(),
		buf:          buffer.New(),
		term:         linescan.CRLF,
		stage:        stageRequestLine,
		req:          newRequest(),
		events:       EventFlags{TrailersProcessed: true},
	}
}

// Events returns a snapshot of the monotonic parse-stage flags.
func (sm *StateMachine) Events() EventFlags { return sm.events }

// Request returns the Request under construction. Its fields are
// meaningful incrementally as the corresponding event flags become true.
func (sm *StateMachine) Request() *Request { return sm.req }

// HTTPError returns the fatal error captured for this request, if any.
func (sm *StateMachine) HTTPError() error { return sm.err }

// Feed appends data to the internal buffer and advances the parse as far
// as possible. It returns immediately once no further progress can be
// made without more data, without blocking and without over-reading.
func (sm *StateMachine) Feed(data []byte) error {
	if sm.stage == stageError {
		if sm.RaiseErrors {
			return sm.err
		}
		return nil
	}
	sm.buf.Append(data)

	for {
		progressed, err := sm.step()
		if err != nil {
			return sm.fail(err)
		}
		if !progressed {
			return nil
		}
	}
}

// fail records a terminal error. Every caller reaches this only through
// step functions that already return an httpstatus.HTTPStatusError
// (directly, or via translateProtoErr's default branch), so the type
// assertion always succeeds.
func (sm *StateMachine) fail(err error) error {
	status, _ := httpstatus.As(err)
	sm.err = status
	sm.events.MessageComplete = true
	sm.stage = stageError
	sm.Log.Error().Err(status).Msg("request parse failed")
	if sm.RaiseErrors {
		return status
	}
	return nil
}

func (sm *StateMachine) step() (bool, error) {
	switch sm.stage {
	case stageRequestLine:
		return sm.stepRequestLine()
	case stageHeaders:
		return sm.stepHeaders()
	case stageBodyFraming:
		return sm.stepBodyFraming()
	case stageBody:
		return sm.stepBody()
	case stageTrailers:
		return sm.stepTrailers()
	case stageDone:
		return sm.stepDone()
	default: // stageFinished, stageError
		return false, nil
	}
}

func (sm *StateMachine) stepRequestLine() (bool, error) {
	line, ok, _ := linescan.Scan(sm.buf, linescan.CRLF, 0)
	if !ok {
		lfLine, lfOK, _ := linescan.Scan(sm.buf, linescan.LF, 0)
		if !lfOK {
			if sm.buf.Len() > sm.MaxURILength {
				return false, httpstatus.RequestURITooLong(
					fmt.Sprintf("request-line exceeds %d bytes", sm.MaxURILength))
			}
			return false, nil
		}
		// LF found without a preceding CR anywhere before it: lock the
		// line terminator to LF for the rest of the message. This must
		// never happen after the request line is consumed.
		sm.term = linescan.LF
		line = lfLine
	}

	method, target, rawTarget, major, minor, err := ParseRequestLine(line)
	if err != nil {
		return false, translateProtoErr(err)
	}

	sm.req.Method = method
	sm.req.Target = target
	sm.req.RawTarget = rawTarget
	sm.req.Major = major
	sm.req.Minor = minor
	sm.events.RequestLineSeen = true
	sm.stage = stageHeaders
	return true, nil
}

func (sm *StateMachine) stepHeaders() (bool, error) {
	n, done, err := sm.req.Headers.Parse(sm.buf.Bytes(), sm.term)
	if err != nil {
		return false, translateProtoErr(err)
	}
	if n == 0 && !done {
		return false, nil
	}
	sm.buf.Discard(n)
	if !done {
		return true, nil
	}
	sm.events.HeadersSeen = true
	if sm.req.Headers.Has("Trailer") {
		sm.events.TrailersProcessed = false
	}
	sm.stage = stageBodyFraming
	return true, nil
}

func (sm *StateMachine) stepBodyFraming() (bool, error) {
	sm.events.BodyStarted = true

	te := strings.TrimSpace(sm.req.Headers.Get("Transfer-Encoding"))
	if atLeast11(sm.req.Major, sm.req.Minor) && te != "" {
		if !strings.EqualFold(te, "chunked") {
			return false, httpstatus.NotImplemented(
				fmt.Sprintf("unsupported transfer-encoding: %q", te))
		}
		sm.mode = bodyChunked
		sm.framer = newChunkFramer()
		sm.stage = stageBody
		return true, nil
	}

	clStr := strings.TrimSpace(sm.req.Headers.Get("Content-Length"))
	if clStr == "" {
		sm.mode = bodyNone
		sm.contentLength = 0
		sm.stage = stageBody
		return true, nil
	}

	cl, err := strconv.ParseInt(clStr, 10, 64)
	if err != nil || cl < 0 {
		return false, httpstatus.BadRequest("invalid Content-Length header")
	}
	sm.mode = bodyLength
	sm.contentLength = cl
	sm.stage = stageBody
	return true, nil
}

func (sm *StateMachine) stepBody() (bool, error) {
	switch sm.mode {
	case bodyNone:
		if sm.buf.Len() > 0 {
			return false, httpstatus.LengthRequired("missing Content-Length header")
		}
		sm.events.BodyComplete = true
		sm.stage = stageTrailers
		return true, nil

	case bodyLength:
		have := sm.req.Body.Len()
		want := int(sm.contentLength)
		if have == want {
			sm.events.BodyComplete = true
			sm.stage = stageTrailers
			return true, nil
		}
		remaining := want - have
		avail := sm.buf.Len()
		if avail == 0 {
			return false, nil
		}
		if avail > remaining {
			return false, httpstatus.BadRequest("body length exceeds declared Content-Length")
		}
		data := sm.buf.Take(avail)
		sm.req.Body.Write(data)
		if sm.req.Body.Len() == want {
			sm.events.BodyComplete = true
			sm.stage = stageTrailers
		}
		return true, nil

	case bodyChunked:
		progressed, finished, err := sm.framer.step(sm.buf, sm.term, sm.req.Body)
		if err != nil {
			return false, translateProtoErr(err)
		}
		if finished {
			sm.events.BodyComplete = true
			sm.stage = stageTrailers
			return true, nil
		}
		return progressed, nil
	}
	return false, nil
}

func (sm *StateMachine) stepTrailers() (bool, error) {
	// A chunked body always ends with a trailer block (at least its empty
	// line); without a Trailer header it may hold no fields.
	if sm.events.TrailersProcessed && sm.mode != bodyChunked {
		sm.stage = stageDone
		return true, nil
	}

	if sm.req.trailers == nil {
		sm.req.trailers = headermap.New()
	}

	n, done, err := sm.req.trailers.Parse(sm.buf.Bytes(), sm.term)
	if err != nil {
		return false, translateProtoErr(err)
	}
	if n == 0 && !done {
		return false, nil
	}
	sm.buf.Discard(n)
	if !done {
		return true, nil
	}

	names := trailerNames(sm.req.Headers.Values("Trailer"))
	if err := headermap.Merge(sm.req.Headers, sm.req.trailers, names); err != nil {
		return false, translateProtoErr(err)
	}
	sm.req.trailers = nil
	sm.Log.Debug().Strs("trailers", names).Msg("merged trailers into headers")

	sm.events.TrailersProcessed = true
	sm.stage = stageDone
	return true, nil
}

func (sm *StateMachine) stepDone() (bool, error) {
	sm.events.MessageComplete = true
	if sm.buf.Len() > 0 {
		return false, httpstatus.BadRequest("too much input")
	}
	_, _ = sm.req.Body.Seek(0, io.SeekStart)
	sm.stage = stageFinished
	return true, nil
}

func trailerNames(values []string) []string {
	var names []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				names = append(names, part)
			}
		}
	}
	return names
}

func translateProtoErr(err error) error {
	if _, ok := httpstatus.As(err); ok {
		return err
	}
	switch {
	case stderrors.Is(err, protoerr.ErrInvalidLine):
		return httpstatus.BadRequest(err.Error())
	case stderrors.Is(err, protoerr.ErrInvalidHeader):
		return httpstatus.BadRequest(err.Error())
	case stderrors.Is(err, protoerr.ErrInvalidBody):
		return httpstatus.BadRequest(err.Error())
	case stderrors.Is(err, protoerr.ErrInvalidURI):
		return httpstatus.BadRequest(err.Error())
	default:
		return httpstatus.BadRequest(err.Error())
	}
}
