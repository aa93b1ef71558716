// Package gslog is a thin leveled-logging shim over zerolog, used only
// at the CLI edge (cmd/gsconv). The core codec packages, including the
// SOG and WebP adapters, never log directly:
// every read/write is a pure function over bytes, per the concurrency
// and resource model, so logging decisions belong to the caller.
package gslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with the field conventions used across
// gsplat-core: "codec" names the format, "op" names the operation.
type Logger struct {
	zl zerolog.Logger
}

// New builds a Logger writing zerolog's JSON lines, each with a
// timestamp field, to w.
func New(w io.Writer) Logger {
	return Logger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// Default returns a Logger writing to stderr.
func Default() Logger {
	return New(os.Stderr)
}

// Info logs an informational message for the given codec/operation.
func (l Logger) Info(codec, op, msg string) {
	l.zl.Info().Str("codec", codec).Str("op", op).Msg(msg)
}

// Warn logs a non-fatal diagnostic, such as a validation warning
// surfaced alongside a successful read.
func (l Logger) Warn(codec, op, msg string) {
	l.zl.Warn().Str("codec", codec).Str("op", op).Msg(msg)
}

// Error logs a failed operation's error.
func (l Logger) Error(codec, op string, err error) {
	l.zl.Error().Str("codec", codec).Str("op", op).Err(err).Msg("failed")
}
