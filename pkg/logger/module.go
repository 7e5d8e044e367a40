package logger

import (
	"log/slog"
	"os"

	"github.com/flowsmith/flowsmith/pkg/config"
	"go.uber.org/fx"
)

// NewSlogLogger builds the process logger from configuration. Every log
// record is also teed into the returned ring buffer so the server can expose
// recent log lines as a diagnostics resource.
func NewSlogLogger(cfg *config.ServerConfig) (*slog.Logger, *RingBuffer) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	buffer := NewRingBuffer(cfg.LogBuffer)
	return slog.New(newBufferingHandler(handler, buffer)), buffer
}

var Module = fx.Module("logger",
	fx.Provide(NewSlogLogger),
)
