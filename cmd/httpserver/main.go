// Command httpserver runs the demo HTTP server: a handful of fixed
// routes exercising the auth codec and Content-Length response framing
// on top of the StateMachine parser.
package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"streamhttp/internal/auth"
	"streamhttp/internal/config"
	"streamhttp/internal/request"
	"streamhttp/internal/server"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.FromArgs("httpserver", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}
	if cfg.Verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	handler := func(w io.Writer, req *request.Request) *server.HandlerError {
		switch req.RawTarget {
		case "/yourproblem":
			return &server.HandlerError{StatusCode: 400, Message: "Your request honestly kinda sucked.\n"}
		case "/myproblem":
			return &server.HandlerError{StatusCode: 500, Message: "Okay, you know what? This one is on me.\n"}
		case "/whoami":
			authz := req.Headers.Get("Authorization")
			if authz == "" {
				return &server.HandlerError{StatusCode: 401, Message: "no Authorization header\n"}
			}
			const prefix = "Basic "
			if len(authz) <= len(prefix) || authz[:len(prefix)] != prefix {
				return &server.HandlerError{StatusCode: 400, Message: "unsupported auth scheme\n"}
			}
			user, _, err := auth.ParseBasicAuth(authz[len(prefix):])
			if err != nil {
				return &server.HandlerError{StatusCode: 400, Message: "malformed Authorization header\n"}
			}
			_, _ = io.WriteString(w, "hello, "+user+"\n")
			return nil
		default:
			_, _ = io.WriteString(w, "Your request was an absolute banger.\n")
			return nil
		}
	}

	srv, err := server.Serve(cfg, log, handler)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
	defer srv.Close()
	log.Info().Str("addr", cfg.ListenAddr).Msg("server started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("server gracefully stopped")
}
