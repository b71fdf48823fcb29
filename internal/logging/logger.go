// Package logging builds the process-wide loggers. Solve reports print
// to stdout, so every log record goes to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New returns a text logger on stderr. Verbose enables debug records.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(handler(os.Stderr, level))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(handler(io.Discard, slog.LevelError))
}

// handler normalizes the "error" key to "err" so log lines stay
// grep-able across packages.
func handler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})
}
