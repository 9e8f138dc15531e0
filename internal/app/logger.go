package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tuanvng/kanjidex/internal/config"
)

// NewLogger builds the application logger from LogConfig and installs it
// as the slog default.
//
// Format "json" is the production shape; "text" adds source locations
// for development. Level is debug, info, warn, or error
// (case-insensitive), anything else falls back to info. Output goes to
// os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	textFormat := strings.EqualFold(cfg.Format, "text")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: textFormat,
	}
	if textFormat {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
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
