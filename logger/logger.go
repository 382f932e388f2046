// Package logger provides the package-wide structured logger used across
// gpvcore, mirroring the shape of the teacher's own logger package: a single
// package-level zerolog.Logger, swappable output, and an explicit Disable
// for callers that want silence. There is no global mutable PRNG or entropy
// state here — only log sink configuration.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu  sync.RWMutex
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
)

// Logger returns the current package-wide logger. Safe for concurrent use;
// callers typically chain .With().Str("component", "gpv") for scoped fields.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetOutput redirects the logger to w, preserving the configured level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Output(w)
}

// SetLevel adjusts the minimum logged level.
func SetLevel(lvl zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = log.Level(lvl)
}

// Disable silences all output, for callers (tests, library embedding) that
// don't want gpvcore writing to stderr.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	log = zerolog.Nop()
}
