package request

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReaderParsesCompleteRequest(t *testing.T) {
	raw := "GET /coffee HTTP/1.1\r\nHost: localhost:42069\r\n\r\n"
	req, err := FromReader(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)
	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "localhost:42069", req.Headers.Get("Host"))
}

func TestFromReaderUnexpectedEOFMidRequest(t *testing.T) {
	raw := "GET /coffee HTTP/1.1\r\nHost: localhost:42069\r\nContent-Length: 10\r\n\r\nshort"
	_, err := FromReader(bytes.NewReader([]byte(raw)))
	require.Error(t, err)
}

func TestFromReaderAppliesMaxURILength(t *testing.T) {
	raw := "GET /a-very-long-path-well-over-the-limit HTTP/1.1"
	_, err := FromReader(bytes.NewReader([]byte(raw)), WithMaxURILength(8))
	require.Error(t, err)
}
