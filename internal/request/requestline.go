package request

import (
	"bytes"
	"strconv"

	"streamhttp/internal/headermap"
	"streamhttp/internal/protoerr"
	"streamhttp/internal/uri"
)

var httpVersionPrefix = []byte("HTTP/")

// ParseRequestLine parses one already-delimited request line (the bytes
// up to, but not including, the line terminator) into its method,
// request-target, and protocol-version parts.
func ParseRequestLine(line []byte) (method string, target *uri.URI, rawTarget string, major, minor int, err error) {
	fields := bytes.Fields(line)
	if len(fields) != 3 {
		return "", nil, "", 0, 0, protoerr.Wrap(protoerr.ErrInvalidLine, "expected \"METHOD target HTTP/x.y\"")
	}

	m, t, v := fields[0], fields[1], fields[2]

	if !headermap.IsToken(m) {
		return "", nil, "", 0, 0, protoerr.Wrap(protoerr.ErrInvalidLine, "method is not a valid token")
	}

	major, minor, err = parseVersion(v)
	if err != nil {
		return "", nil, "", 0, 0, err
	}

	u, err := uri.Parse(t)
	if err != nil {
		return "", nil, "", 0, 0, err
	}

	return string(m), u, string(t), major, minor, nil
}

func parseVersion(v []byte) (major, minor int, err error) {
	if !bytes.HasPrefix(v, httpVersionPrefix) {
		return 0, 0, protoerr.Wrap(protoerr.ErrInvalidLine, "missing HTTP-version prefix")
	}
	rest := v[len(httpVersionPrefix):]
	parts := bytes.SplitN(rest, []byte("."), 2)
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) == 0 {
		return 0, 0, protoerr.Wrap(protoerr.ErrInvalidLine, "malformed HTTP-version")
	}
	major, errMaj := strconv.Atoi(string(parts[0]))
	minor, errMin := strconv.Atoi(string(parts[1]))
	if errMaj != nil || errMin != nil || major < 0 || minor < 0 {
		return 0, 0, protoerr.Wrap(protoerr.ErrInvalidLine, "malformed HTTP-version")
	}
	return major, minor, nil
}

// atLeast11 reports whether (major, minor) is >= HTTP/1.1.
func atLeast11(major, minor int) bool {
	return major > 1 || (major == 1 && minor >= 1)
}
