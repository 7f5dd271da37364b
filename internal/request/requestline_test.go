package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequestLineValid(t *testing.T) {
	method, target, rawTarget, major, minor, err := ParseRequestLine([]byte("GET /coffee HTTP/1.1"))
	require.NoError(t, err)
	assert.Equal(t, "GET", method)
	assert.Equal(t, "/coffee", rawTarget)
	assert.Equal(t, "/coffee", target.Path)
	assert.Equal(t, 1, major)
	assert.Equal(t, 1, minor)
}

func TestParseRequestLineWrongFieldCount(t *testing.T) {
	_, _, _, _, _, err := ParseRequestLine([]byte("GET /coffee"))
	require.Error(t, err)
}

func TestParseRequestLineInvalidMethod(t *testing.T) {
	_, _, _, _, _, err := ParseRequestLine([]byte("G@T / HTTP/1.1"))
	require.Error(t, err)
}

func TestParseRequestLineBadVersion(t *testing.T) {
	_, _, _, _, _, err := ParseRequestLine([]byte("GET / HTTP/1"))
	require.Error(t, err)

	_, _, _, _, _, err = ParseRequestLine([]byte("GET / HTX/1.1"))
	require.Error(t, err)
}

func TestAtLeast11(t *testing.T) {
	assert.True(t, atLeast11(1, 1))
	assert.True(t, atLeast11(2, 0))
	assert.False(t, atLeast11(1, 0))
	assert.False(t, atLeast11(0, 9))
}
