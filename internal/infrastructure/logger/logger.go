package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/LavaJover/shvark-settlement-service/internal/config"
)

// New builds the service logger from log_config.
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
		if strings.EqualFold(cfg.LogOutput, "stderr") {
			w = os.Stderr
		}
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", "settlement-service")
}

// Setup installs New(cfg) as the process default logger.
func Setup(cfg config.LogConfig) *slog.Logger {
	l := New(cfg, nil)
	slog.SetDefault(l)
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
