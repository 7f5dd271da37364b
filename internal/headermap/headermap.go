// Package headermap implements the case-insensitive header/trailer
// multimap the request parser builds incrementally. Keys are
// canonicalized to title-case ASCII for storage and comparison; values
// are decoded from ISO-8859-1 per RFC 7230 §3.2.4.
package headermap

import (
	"bytes"
	"net/textproto"
	"strings"

	"streamhttp/internal/codec"
	"streamhttp/internal/protoerr"
)

// maxLineLen bounds a single unterminated header/trailer line, preventing
// an attacker from growing the buffer unboundedly while claiming "more
// data is coming".
const maxLineLen = 8 * 1024

// HeaderMap is an insertion-ordered, case-insensitive multimap.
type HeaderMap struct {
	order  []string
	values map[string][]string
}

// New returns an empty HeaderMap.
func New() *HeaderMap {
	return &HeaderMap{values: make(map[string][]string)}
}

func canonical(name string) string {
	return textproto.CanonicalMIMEHeaderKey(name)
}

// Get returns the first value stored for name, or "" if absent.
func (h *HeaderMap) Get(name string) string {
	return h.GetDefault(name, "")
}

// GetDefault returns the first value stored for name, or def if absent.
func (h *HeaderMap) GetDefault(name, def string) string {
	vs, ok := h.values[canonical(name)]
	if !ok || len(vs) == 0 {
		return def
	}
	return vs[0]
}

// Has reports whether name has at least one value.
func (h *HeaderMap) Has(name string) bool {
	vs, ok := h.values[canonical(name)]
	return ok && len(vs) > 0
}

// Values returns every value stored for name, in insertion order.
func (h *HeaderMap) Values(name string) []string {
	return h.values[canonical(name)]
}

// Append adds value to name's sequence, canonicalizing name and recording
// it in Keys() order the first time it is seen.
func (h *HeaderMap) Append(name, value string) {
	key := canonical(name)
	if _, ok := h.values[key]; !ok {
		h.order = append(h.order, key)
	}
	h.values[key] = append(h.values[key], value)
}

// Delete removes every value stored for name.
func (h *HeaderMap) Delete(name string) {
	key := canonical(name)
	if _, ok := h.values[key]; !ok {
		return
	}
	delete(h.values, key)
	for i, k := range h.order {
		if k == key {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Keys returns the canonicalized header names in first-seen order.
func (h *HeaderMap) Keys() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Pop removes and returns the first value stored for name, along with
// whether one was present. Used by trailer merging, which must consume
// each declared trailer exactly once.
func (h *HeaderMap) Pop(name string) (string, bool) {
	key := canonical(name)
	vs, ok := h.values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	v := vs[0]
	if len(vs) == 1 {
		h.Delete(name)
	} else {
		h.values[key] = vs[1:]
	}
	return v, true
}

// Len reports how many distinct header names are stored.
func (h *HeaderMap) Len() int { return len(h.order) }

var (
	crlf      = []byte("\r\n")
	lf        = []byte("\n")
	colon     = []byte(":")
	spaceTab  = []byte(" \t")
	allowedCh [256]bool
)

func init() {
	for c := byte('0'); c <= '9'; c++ {
		allowedCh[c] = true
	}
	for c := byte('A'); c <= 'Z'; c++ {
		allowedCh[c] = true
	}
	for c := byte('a'); c <= 'z'; c++ {
		allowedCh[c] = true
	}
	for _, c := range []byte("!#$%&'*+-.^_`|~") {
		allowedCh[c] = true
	}
}

// IsToken reports whether b is a valid RFC 7230 token, the grammar shared
// by header field-names and request methods.
func IsToken(b []byte) bool {
	return isToken(b)
}

func isToken(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c > 127 || !allowedCh[c] {
			return false
		}
	}
	return true
}

// Parse consumes field-lines from data, one per call to the line
// terminator term (CRLF, or LF once the message has negotiated LF
// tolerance), stopping at the blank line that ends the block. It returns
// the number of bytes consumed so far and whether the blank line
// (end-of-block) was reached; n is meaningful even when done is false,
// so the caller can advance its buffer incrementally across Feed calls.
func (h *HeaderMap) Parse(data []byte, term []byte) (n int, done bool, err error) {
	off := 0
	for {
		idx := bytes.Index(data[off:], term)
		if idx == -1 {
			if len(data)-off > maxLineLen {
				return 0, false, protoerr.Wrap(protoerr.ErrInvalidHeader, "header line too long")
			}
			return off, false, nil
		}
		if idx > maxLineLen {
			return 0, false, protoerr.Wrap(protoerr.ErrInvalidHeader, "header line too long")
		}

		line := data[off : off+idx]
		off += idx + len(term)

		if len(line) == 0 {
			return off, true, nil
		}

		if line[0] == ' ' || line[0] == '\t' {
			return 0, false, protoerr.Wrap(protoerr.ErrInvalidHeader, "obsolete line folding is not supported")
		}

		c := bytes.IndexByte(line, colon[0])
		if c <= 0 {
			return 0, false, protoerr.Wrap(protoerr.ErrInvalidHeader, "missing colon in field-line")
		}

		nameRaw := line[:c]
		if bytes.ContainsAny(nameRaw, string(spaceTab)) {
			return 0, false, protoerr.Wrap(protoerr.ErrInvalidHeader, "whitespace in field-name")
		}
		if !isToken(nameRaw) {
			return 0, false, protoerr.Wrap(protoerr.ErrInvalidHeader, "field-name is not a valid token")
		}

		val := codec.DecodeLatin1(bytes.Trim(line[c+1:], " \t"))
		h.Append(string(nameRaw), val)
	}
}

// Terminators recognized by Parse; exported so callers negotiating the
// message's line terminator can pass the right one through.
var (
	CRLF = crlf
	LF   = lf
)

// LooksLikeFold reports whether line begins with a continuation marker,
// exposed for callers that want to surface a clearer diagnostic before
// calling Parse.
func LooksLikeFold(line []byte) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

// Merge folds src into h, used when the trailer block is appended to the
// main header map after chunked-body completion. Each declared name's
// first value is popped from src and appended to h; whatever is left in
// src afterwards is an undeclared trailer.
func Merge(h, src *HeaderMap, names []string) error {
	for _, name := range names {
		if v, ok := src.Pop(name); ok {
			h.Append(name, v)
		}
		// A trailer declared in the Trailer header but never sent is
		// tolerated; only a trailer present here but undeclared there
		// is fatal, below.
	}
	if src.Len() > 0 {
		return protoerr.Wrap(protoerr.ErrInvalidHeader, "untold trailer: \""+strings.Join(src.Keys(), "\", \"")+"\"")
	}
	return nil
}
