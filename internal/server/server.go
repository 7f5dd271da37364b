// Package server hosts the StateMachine-driven request parser behind a
// plain TCP listener: one goroutine per accepted connection, each owning
// exactly one parser and one response Writer.
package server

import (
	"bytes"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"streamhttp/internal/config"
	"streamhttp/internal/httpstatus"
	"streamhttp/internal/request"
	"streamhttp/internal/response"
)

// HandlerError lets a Handler short-circuit with a specific status and
// body without constructing a response.Writer itself.
type HandlerError struct {
	StatusCode int
	Message    string
}

// Handler produces a response body for req by writing to w. Returning a
// non-nil HandlerError overrides the 200 OK default.
type Handler func(w io.Writer, req *request.Request) *HandlerError

// Server accepts TCP connections and runs Handler against each parsed
// Request.
type Server struct {
	cfg      config.Config
	listener net.Listener
	closed   atomic.Bool
	handler  Handler
	log      zerolog.Logger
}

// Serve starts listening per cfg and returns immediately; connections
// are accepted on a background goroutine until Close is called.
func Serve(cfg config.Config, log zerolog.Logger, handler Handler) (*Server, error) {
	l, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      cfg,
		listener: l,
		handler:  handler,
		log:      log,
	}
	go s.listen()
	return s, nil
}

// Close stops accepting new connections. Idempotent.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) listen() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.log.Warn().Err(err).Msg("transient accept error")
			continue
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	remoteHost, _, _ := net.SplitHostPort(conn.RemoteAddr().String())
	evt := s.log.With().Str("remote", remoteHost).Logger()

	if s.cfg.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
	}

	req, err := request.FromReader(conn, request.WithMaxURILength(s.cfg.MaxURILength))
	if err != nil {
		status := 400
		if se, ok := httpstatus.As(err); ok {
			status = se.StatusCode()
		}
		evt.Info().Int("status", status).Dur("elapsed", time.Since(start)).Err(err).Msg("request rejected")
		_ = response.NewWriter(conn).WriteStatusLine(status)
		_, _ = io.WriteString(conn, "Connection: close\r\nContent-Length: 0\r\n\r\n")
		return
	}

	method := req.Method
	target := req.RawTarget

	if s.cfg.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
	}

	var body bytes.Buffer
	handleErr := s.handler(&body, req)

	status := 200
	respBody := body.Bytes()
	if handleErr != nil {
		status = handleErr.StatusCode
		respBody = []byte(handleErr.Message)
	}

	w := response.NewWriter(conn)
	if err := w.WriteStatusLine(status); err != nil {
		evt.Warn().Str("method", method).Str("target", target).Err(err).Msg("failed writing status line")
		return
	}
	if err := w.WriteHeaders(response.GetDefaultHeaders(len(respBody))); err != nil {
		evt.Warn().Str("method", method).Str("target", target).Err(err).Msg("failed writing headers")
		return
	}
	if _, err := w.WriteBody(respBody); err != nil {
		evt.Warn().Str("method", method).Str("target", target).Err(err).Msg("failed writing body")
		return
	}

	evt.Info().
		Str("method", method).
		Str("target", target).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("request served")
}
