package app

import (
	"io"
	"log/slog"
	"strings"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger creates an isolated slog.Logger writing diagnostics to w. Unknown
// levels fall back to info, unknown formats to text.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	level, ok := logLevels[strings.ToLower(levelStr)]
	if !ok {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(formatStr) == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
