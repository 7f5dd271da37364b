// Package uri is the external URI-parsing collaborator the request line
// parser delegates to. It decomposes a request-target into its
// scheme/authority/path/query/fragment parts and resolves a default
// port, wrapping any failure into protoerr.ErrInvalidURI so the driver
// can map it to a typed HTTP status.
//
// The parse itself is RFC 3986 decomposition, a solved problem the
// standard library already gets right (badu-http's own url package, a
// byte-for-byte fork of net/url, is evidence the ecosystem reaches for
// exactly this implementation rather than a third-party alternative);
// this package exists to adapt its error type to protoerr and to resolve
// the default port HTTP requires.
package uri

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"streamhttp/internal/protoerr"
)

// URI is the decomposed request-target.
type URI struct {
	Scheme   string
	Host     string
	Port     string
	Path     string
	RawQuery string
	Fragment string
}

// defaultPorts maps a scheme to the port implied when none is given.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Parse decomposes raw, a request-target as it appears on the request
// line (origin-form, absolute-form, authority-form, or asterisk-form).
func Parse(raw []byte) (*URI, error) {
	s := string(raw)
	if s == "" {
		return nil, protoerr.Wrap(protoerr.ErrInvalidURI, "empty request-target")
	}
	if s == "*" {
		return &URI{Path: "*"}, nil
	}
	if !strings.Contains(s, "/") {
		// CONNECT authority-form ("host:port") has no scheme and no
		// path; url.Parse would otherwise misread the part before the
		// colon as a scheme.
		if host, port, err := net.SplitHostPort(s); err == nil {
			return &URI{Host: host, Port: port}, nil
		}
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.ErrInvalidURI, err.Error())
	}

	out := &URI{
		Scheme:   u.Scheme,
		Path:     u.Path,
		RawQuery: u.RawQuery,
		Fragment: u.Fragment,
	}
	if u.Host != "" {
		out.Host, out.Port, err = splitHostPort(u.Host)
		if err != nil {
			return nil, protoerr.Wrap(protoerr.ErrInvalidURI, err.Error())
		}
	}
	if out.Port == "" {
		scheme := strings.ToLower(out.Scheme)
		if p, ok := defaultPorts[scheme]; ok {
			out.Port = p
		}
	}
	if out.Path == "" {
		out.Path = "/"
	}
	return out, nil
}

func splitHostPort(hostport string) (host, port string, err error) {
	if !strings.Contains(hostport, ":") {
		return hostport, "", nil
	}
	h, p, splitErr := net.SplitHostPort(hostport)
	if splitErr != nil {
		return "", "", splitErr
	}
	if _, convErr := strconv.Atoi(p); p != "" && convErr != nil {
		return "", "", convErr
	}
	return h, p, nil
}
