package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu    sync.Mutex
	base  zerolog.Logger
	ready atomic.Bool
	out   io.Writer = os.Stdout
)

// Init configures the global JSON logger.
//
// Parameters:
//   - level: debug|info|warn|error (anything else means info).
//   - pretty: use a human-readable console writer instead of JSON.
func Init(level string, pretty bool) {
	mu.Lock()
	defer mu.Unlock()
	initLocked(level, pretty)
}

func initLocked(level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	w := out
	if pretty {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	base = zerolog.New(w).With().Timestamp().Str("service", "cryptostats").Logger().Level(parseLevel(level))
	ready.Store(true)
}

// SetOutput redirects subsequent Init calls to w (stdout by default).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// L returns the global logger. Call Init() once on startup.
func L() *zerolog.Logger {
	// a zero zerolog.Logger discards everything
	if !ready.Load() {
		mu.Lock()
		if !ready.Load() {
			initLocked("info", false)
		}
		mu.Unlock()
	}
	return &base
}

// With returns a child logger tagged with a component name.
func With(component string) zerolog.Logger {
	return L().With().Str("component", component).Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
