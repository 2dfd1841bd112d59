// Package logger holds the process-wide zerolog instance. Init is called once
// from main; everything else receives the logger by injection, with Get as
// the escape hatch for code that runs before wiring is complete.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// service is stamped on every log event so aggregated streams stay
// attributable when several back-office processes share a sink.
const service = "logistics-api"

// Options selects the output shape at startup.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn or error.
	// Unrecognised values fall back to info.
	Level string
	// Pretty switches to the human console writer. Production runs leave it
	// off and ship JSON.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu    sync.Mutex
	root  zerolog.Logger
	ready bool
)

// Init builds the process logger. Later calls are ignored and return the
// logger from the first.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if ready {
		return root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(level)

	root = zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Str("service", service).
		Logger()
	ready = true
	return root
}

// Get returns the process logger. Panics when Init has not run; that is a
// wiring bug, not a runtime condition to recover from.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !ready {
		panic("logger: Get called before Init")
	}
	return root
}

// Reset discards the singleton so tests can re-Init with different options.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	root = zerolog.Logger{}
	ready = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
