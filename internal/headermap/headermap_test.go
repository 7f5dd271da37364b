package headermap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleHeader(t *testing.T) {
	h := New()
	data := []byte("Host: localhost:42069\r\n\r\n")
	n, done, err := h.Parse(data, CRLF)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.True(t, done)
	assert.Equal(t, "localhost:42069", h.Get("host"))
}

func TestParseRepeatedHeaderPreservesOrder(t *testing.T) {
	h := New()
	data := []byte("X-Person: some1\r\nX-Person: some2\r\nX-Person: some3\r\n\r\n")
	n, done, err := h.Parse(data, CRLF)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, len(data), n)
	assert.Equal(t, []string{"some1", "some2", "some3"}, h.Values("X-Person"))
}

func TestParseRejectsSpaceBeforeColon(t *testing.T) {
	h := New()
	_, _, err := h.Parse([]byte("Host : localhost\r\n\r\n"), CRLF)
	require.Error(t, err)
}

func TestParseRejectsObsoleteFolding(t *testing.T) {
	h := New()
	_, _, err := h.Parse([]byte("Host: localhost\r\n   extra\r\n\r\n"), CRLF)
	require.Error(t, err)
}

func TestParseLineTooLong(t *testing.T) {
	h := New()
	big := bytes.Repeat([]byte("A"), maxLineLen+1)
	_, _, err := h.Parse(append([]byte("Host: "), big...), CRLF)
	require.Error(t, err)
}

func TestParseIncrementalAcrossCalls(t *testing.T) {
	h := New()
	n, done, err := h.Parse([]byte("Host: x\r\nX-F"), CRLF)
	require.NoError(t, err)
	require.False(t, done)
	assert.Equal(t, len("Host: x\r\n"), n)

	n2, done, err := h.Parse([]byte("X-Foo: bar\r\n\r\n"), CRLF)
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, len("X-Foo: bar\r\n\r\n"), n2)
	assert.Equal(t, "bar", h.Get("X-Foo"))
}

func TestGetPopDelete(t *testing.T) {
	h := New()
	h.Append("Content-Type", "text/plain")
	assert.True(t, h.Has("content-type"))

	v, ok := h.Pop("Content-Type")
	assert.True(t, ok)
	assert.Equal(t, "text/plain", v)
	assert.False(t, h.Has("Content-Type"))

	_, ok = h.Pop("Content-Type")
	assert.False(t, ok)

	h.Append("X-A", "1")
	h.Delete("X-A")
	assert.False(t, h.Has("X-A"))
}

func TestMergeTolerantOfMissingDeclaredTrailer(t *testing.T) {
	h := New()
	src := New()
	src.Append("Checksum", "abc123")

	err := Merge(h, src, []string{"Checksum", "Signature"})
	require.NoError(t, err)
	assert.Equal(t, "abc123", h.Get("Checksum"))
	assert.False(t, h.Has("Signature"))
}

func TestMergeFailsOnUntoldTrailer(t *testing.T) {
	h := New()
	src := New()
	src.Append("Checksum", "abc123")
	src.Append("Sneaky", "oops")

	err := Merge(h, src, []string{"Checksum"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sneaky")
}

func TestIsToken(t *testing.T) {
	assert.True(t, IsToken([]byte("GET")))
	assert.True(t, IsToken([]byte("X-Custom-Header")))
	assert.False(t, IsToken([]byte("")))
	assert.False(t, IsToken([]byte("bad header")))
	assert.False(t, IsToken([]byte("bad:header")))
}
