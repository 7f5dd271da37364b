package response

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamhttp/internal/headermap"
)

func TestWriteStatusLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteStatusLine(404))
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\n", buf.String())
}

func TestWriteHeadersSortedWithBlankLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	h := headermap.New()
	h.Append("Content-Type", "text/plain")
	h.Append("Content-Length", "5")
	require.NoError(t, w.WriteHeaders(h))
	assert.Equal(t, "Content-Length: 5\r\nContent-Type: text/plain\r\n\r\n", buf.String())
}

func TestWriteHeadersDropsContentLengthWhenChunked(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	h := headermap.New()
	h.Append("Content-Length", "5")
	h.Append("Transfer-Encoding", "chunked")
	require.NoError(t, w.WriteHeaders(h))
	assert.NotContains(t, buf.String(), "Content-Length")
}

func TestWriteChunkedBody(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, err := w.WriteChunkedBody([]byte("hello"))
	require.NoError(t, err)
	_, err = w.WriteChunkedBodyDone()
	require.NoError(t, err)
	assert.Equal(t, "5\r\nhello\r\n0\r\n\r\n", buf.String())
}

func TestGetDefaultHeaders(t *testing.T) {
	h := GetDefaultHeaders(42)
	assert.Equal(t, "42", h.Get("Content-Length"))
	assert.Equal(t, "close", h.Get("Connection"))
}
