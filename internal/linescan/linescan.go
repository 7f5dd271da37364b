// Package linescan detects CRLF/LF-tolerant line boundaries in a
// buffer.Buffer, with an optional length guard used to bound unterminated
// lines (request-line DoS protection).
package linescan

import "streamhttp/internal/buffer"

// CRLF and LF are the two line terminators this parser tolerates. CRLF is
// the RFC 7230 terminator; LF-only is a tolerance feature for
// non-conforming clients and, once chosen for the request line, is locked
// in for the rest of the message.
var (
	CRLF = []byte("\r\n")
	LF   = []byte("\n")
)

// Scan looks for term in buf. If found, the line (excluding term) is
// consumed from buf and returned with ok true. If not found, ok is false
// and nothing is consumed; exceeded is true when maxLen is positive and
// the buffer already holds more unconsumed bytes than maxLen, signaling
// the caller should treat this as a size violation rather than waiting
// for more data.
func Scan(buf *buffer.Buffer, term []byte, maxLen int) (line []byte, ok bool, exceeded bool) {
	if !buf.Has(term) {
		if maxLen > 0 && buf.Len() > maxLen {
			return nil, false, true
		}
		return nil, false, false
	}
	line, ok = buf.SplitOnce(term)
	return line, ok, false
}
