// Package config assembles the Server's process-level configuration from
// command-line flags into a struct the CLI and tests can both construct.
package config

import (
	"flag"
	"time"
)

// Config holds everything the Server needs to accept connections and
// bound the parser running on each one.
type Config struct {
	ListenAddr   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxURILength int
	Verbose      bool
}

// Default returns the configuration the demo server listens with when
// no flags are given.
func Default() Config {
	return Config{
		ListenAddr:   ":42069",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		MaxURILength: 1024,
	}
}

// FromArgs parses args (typically os.Args[1:]) against Default,
// returning the resulting Config.
func FromArgs(name string, args []string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "address to listen on, e.g. :42069")
	fs.DurationVar(&cfg.ReadTimeout, "read-timeout", cfg.ReadTimeout, "per-connection read deadline")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "per-connection write deadline")
	fs.IntVar(&cfg.MaxURILength, "max-uri-length", cfg.MaxURILength, "maximum request-line size in bytes while no line terminator has arrived")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug-level logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
