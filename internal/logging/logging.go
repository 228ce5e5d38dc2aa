// Package logging builds the process logger.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Format selects the handler encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseLevel maps debug|info|warn|error to a slog level. Unknown names fall
// back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init installs a logger as the slog default and returns it.
func Init(w io.Writer, level string, debug bool) *slog.Logger {
	lvl := ParseLevel(level)
	if debug {
		lvl = slog.LevelDebug
	}
	l := New(w, lvl, FormatText)
	slog.SetDefault(l)
	return l
}
