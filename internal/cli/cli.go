// Package cli carries the small pieces shared by the command-line tools.
package cli

import (
	"log/slog"
	"os"

	"github.com/caarlos0/env/v10"
)

// LogConfig contains logging configuration, sourced from the environment.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// SetupLoggerFromEnv builds the process logger from LOG_LEVEL and LOG_FORMAT.
func SetupLoggerFromEnv() *slog.Logger {
	cfg := LogConfig{Level: "info", Format: "text"}
	// Parse errors fall back to defaults; logging must never block startup.
	_ = env.Parse(&cfg)
	return SetupLogger(cfg.Level, cfg.Format)
}

// SetupLogger builds the process logger. level is one of debug, info, warn,
// error; format is "json" or "text".
func SetupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
