// Package response is the response-writer counterpart the demo CLI uses
// to answer a parsed Request: status line, headers, and body, with the
// same Content-Length/chunked framing choice on the way out that the
// core parser recognizes coming in. It is not exercised by the request
// parser itself, but keeps the module runnable end to end.
package response

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"streamhttp/internal/headermap"
)

const httpVersion = "HTTP/1.1"

// GetDefaultHeaders returns a fresh header map with the defaults every
// response in this demo carries.
func GetDefaultHeaders(contentLen int) *headermap.HeaderMap {
	h := headermap.New()
	h.Append("Content-Length", strconv.Itoa(contentLen))
	h.Append("Connection", "close")
	h.Append("Content-Type", "text/plain")
	return h
}

// Writer sequences a status line, headers, and body onto an underlying
// io.Writer (typically a net.Conn).
type Writer struct {
	writer  io.Writer
	Status  int
	Headers *headermap.HeaderMap
	Body    []byte
}

// NewWriter wraps conn for a single response.
func NewWriter(conn io.Writer) *Writer {
	return &Writer{writer: conn, Status: http.StatusOK}
}

// SetBody stores body in the Body field. WriteBody writes its own
// argument and does not read this field.
func (w *Writer) SetBody(body []byte) {
	w.Body = body
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n".
func (w *Writer) WriteStatusLine(statusCode int) error {
	reason := http.StatusText(statusCode)
	if reason == "" {
		reason = "Unknown"
	}
	_, err := fmt.Fprintf(w.writer, "%s %d %s\r\n", httpVersion, statusCode, reason)
	return err
}

// WriteHeaders writes h (overlaid with any writer-level defaults)
// followed by the blank line ending the header block.
func (w *Writer) WriteHeaders(h *headermap.HeaderMap) error {
	if h == nil {
		_, err := io.WriteString(w.writer, "\r\n")
		return err
	}

	if w.Headers != nil {
		for _, k := range w.Headers.Keys() {
			h.Delete(k)
			h.Append(k, w.Headers.Get(k))
		}
	}

	if tokenListContains(h.Get("Transfer-Encoding"), "chunked") {
		h.Delete("Content-Length")
	}

	keys := h.Keys()
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range h.Values(k) {
			if _, err := fmt.Fprintf(w.writer, "%s: %s\r\n", k, v); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w.writer, "\r\n")
	return err
}

func tokenListContains(list, token string) bool {
	for _, t := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(t), token) {
			return true
		}
	}
	return false
}

// WriteBody writes p directly, for Content-Length-framed responses.
func (w *Writer) WriteBody(p []byte) (int, error) {
	return w.writer.Write(p)
}

const maxChunkSize = 1024

// WriteChunkedBody writes p as one or more chunked-transfer chunks.
func (w *Writer) WriteChunkedBody(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		size := min(len(p), maxChunkSize)
		chunk := p[:size]
		p = p[size:]

		if _, err := fmt.Fprintf(w.writer, "%x\r\n", len(chunk)); err != nil {
			return total, err
		}
		n, err := w.writer.Write(chunk)
		total += n
		if err != nil {
			return total, err
		}
		if _, err := w.writer.Write([]byte("\r\n")); err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteChunkedBodyDone writes the terminating zero-size chunk and the
// (here, empty) trailer block.
func (w *Writer) WriteChunkedBodyDone() (int, error) {
	return w.writer.Write([]byte("0\r\n\r\n"))
}
