// Package auth implements the Basic authentication header scheme
// (RFC 7617): encoding and decoding the base64 "username:password"
// payload carried in an Authorization or WWW-Authenticate header value.
// The request parser never looks inside these values itself; this is
// for handlers sitting on top of a completed Request that do.
package auth

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
	"streamhttp/internal/codec"
)

// ErrInvalidBasicAuth reports a malformed Basic authentication value.
var ErrInvalidBasicAuth = errors.New("invalid basic authentication")

// ParseBasicAuth decodes an "Authorization: Basic <base64>" header value
// (authInfo is everything after the "Basic " scheme token) into a
// username/password pair.
func ParseBasicAuth(authInfo string) (username, password string, err error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(authInfo))
	if err != nil {
		return "", "", errors.Wrap(ErrInvalidBasicAuth, "invalid base64")
	}
	user, pass, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", errors.Wrap(ErrInvalidBasicAuth, "no username:password provided")
	}
	return codec.DecodeLatin1([]byte(user)), codec.DecodeLatin1([]byte(pass)), nil
}

// EncodeBasicAuth composes the base64 payload for an "Authorization:
// Basic <payload>" header value.
func EncodeBasicAuth(username, password string) string {
	raw := append(codec.EncodeLatin1(username), ':')
	raw = append(raw, codec.EncodeLatin1(password)...)
	return base64.StdEncoding.EncodeToString(raw)
}
