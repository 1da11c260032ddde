// CLAUDE:SUMMARY slog setup helpers shared by the CLI entry points.
// Package observability holds the ambient concerns of the scaffold:
// structured logging setup and the sqlite-backed capture audit log.
package observability

import (
	"io"
	"log/slog"
)

// ParseLevel maps a CLI log-level string to a slog.Level. Unknown values
// fall back to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON slog logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a text slog logger writing to w, for one-shot
// CLI runs where JSON is noise.
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
