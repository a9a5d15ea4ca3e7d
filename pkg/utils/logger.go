package utils

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	config "github.com/maheshrc27/tripnest-api/configs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the process logger and installs it as the slog default.
// Format "json" is meant for production, "text" adds source locations.
func NewLogger(cfg config.Log) (*slog.Logger, error) {
	out, err := logOutput(cfg)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func logOutput(cfg config.Log) (io.Writer, error) {
	switch strings.ToLower(cfg.Output) {
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, err
		}
		return &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}, nil
	case "stdout":
		return os.Stdout, nil
	default:
		return os.Stderr, nil
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
