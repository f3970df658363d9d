package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Init creates and sets the package-level default slog logger, writing to w
// (normally stderr, so log lines never mix with progress bar redraws or the
// report artifact). Format "json" selects JSONHandler; anything else gets
// TextHandler for human readability.
func Init(w io.Writer, format string, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
