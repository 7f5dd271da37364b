// Package buffer implements the append-and-split byte accumulator that
// backs the request parser. It is the single source of truth for
// unconsumed connection input: every consumer of the stream inspects it,
// then splits off the bytes it needs.
package buffer

import "bytes"

// compactThreshold bounds how much consumed-but-unreclaimed space we carry
// before sliding the live bytes back to the front of the backing array.
const compactThreshold = 4096

// Buffer is a growable byte accumulator with cheap prefix extraction.
// The zero value is an empty buffer ready to use; New returns one.
type Buffer struct {
	data []byte
	off  int
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Append adds p to the end of the buffer. p is copied.
func (b *Buffer) Append(p []byte) {
	b.data = append(b.data, p...)
}

// Len reports the number of unconsumed bytes.
func (b *Buffer) Len() int {
	return len(b.data) - b.off
}

// Bytes returns the unconsumed bytes. The returned slice aliases the
// buffer's storage and is only valid until the next mutating call.
func (b *Buffer) Bytes() []byte {
	return b.data[b.off:]
}

// Has reports whether delim occurs anywhere in the unconsumed bytes.
func (b *Buffer) Has(delim []byte) bool {
	return bytes.Contains(b.Bytes(), delim)
}

// StartsWith reports whether the unconsumed bytes begin with delim.
func (b *Buffer) StartsWith(delim []byte) bool {
	return bytes.HasPrefix(b.Bytes(), delim)
}

// SplitOnce finds the first occurrence of delim, consumes the prefix plus
// delim, and returns a copy of the prefix. ok is false (and nothing is
// consumed) when delim does not occur in the unconsumed bytes.
func (b *Buffer) SplitOnce(delim []byte) (prefix []byte, ok bool) {
	idx := bytes.Index(b.Bytes(), delim)
	if idx == -1 {
		return nil, false
	}
	prefix = append([]byte(nil), b.Bytes()[:idx]...)
	b.off += idx + len(delim)
	b.compact()
	return prefix, true
}

// Take consumes and returns up to n unconsumed bytes.
func (b *Buffer) Take(n int) []byte {
	if n > b.Len() {
		n = b.Len()
	}
	if n <= 0 {
		return nil
	}
	out := append([]byte(nil), b.Bytes()[:n]...)
	b.off += n
	b.compact()
	return out
}

// Discard drops n bytes from the front of the unconsumed region without
// returning them.
func (b *Buffer) Discard(n int) {
	if n > b.Len() {
		n = b.Len()
	}
	b.off += n
	b.compact()
}

func (b *Buffer) compact() {
	if b.off < compactThreshold || b.off*2 < len(b.data) {
		return
	}
	remaining := b.Len()
	copy(b.data, b.data[b.off:])
	b.data = b.data[:remaining]
	b.off = 0
}
