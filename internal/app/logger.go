package app

import (
	"io"
	"log/slog"
)

// logLevels maps the accepted -log-level values onto slog levels. The CLI
// validates the flag before an App is built, so the fallback only matters
// when a Config is constructed directly.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the App's isolated logger from the run configuration.
// The global logger is left untouched so tests can run Apps side by side.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
