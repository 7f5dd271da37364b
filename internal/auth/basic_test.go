package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicAuthRoundTrip(t *testing.T) {
	payload := EncodeBasicAuth("alice", "s3cr3t")
	user, pass, err := ParseBasicAuth(payload)
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "s3cr3t", pass)
}

func TestParseBasicAuthRejectsBadBase64(t *testing.T) {
	_, _, err := ParseBasicAuth("not-base64!!!")
	require.Error(t, err)
}

func TestParseBasicAuthRejectsMissingColon(t *testing.T) {
	_, _, err := ParseBasicAuth("YWxpY2U=") // "alice", no colon
	require.Error(t, err)
}
