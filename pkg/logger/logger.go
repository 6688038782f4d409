// Package logger wires the process-wide zerolog logger.
//
// main calls Init exactly once at startup; everything below the router
// receives a child logger by value and never reaches for the global.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls how the logger is built.
type Options struct {
	// Level is the minimum level emitted ("trace" through "error").
	// Unrecognised or empty values fall back to "info".
	Level string
	// Pretty switches from JSON to coloured console output. Leave it
	// false in production so log collectors get structured lines.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	global zerolog.Logger
	once   sync.Once
	ready  bool
)

// Init builds the global logger and returns it. Subsequent calls are
// no-ops and return the logger built by the first call.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		lvl, err := zerolog.ParseLevel(opts.Level)
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(lvl)

		global = zerolog.New(out).Level(lvl).With().Timestamp().Logger()
		ready = true
	})
	return global
}

// Get returns the global logger. It panics when Init has not run yet,
// which always indicates a wiring bug in main.
func Get() zerolog.Logger {
	if !ready {
		panic("logger: Get called before Init")
	}
	return global
}
