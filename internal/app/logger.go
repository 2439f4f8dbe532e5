package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/topgearmoscow/miniapp-backend/internal/config"
	"github.com/topgearmoscow/miniapp-backend/internal/domain"
)

// phoneKey is the attribute key services use for customer phone numbers.
const phoneKey = "phone"

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output (production).
// Format "text" produces human-readable output with source info (development).
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Phone attributes are masked down to their last four digits.
// Output is always os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   strings.EqualFold(cfg.Format, "text"),
		ReplaceAttr: maskPhones,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func maskPhones(_ []string, a slog.Attr) slog.Attr {
	if a.Key != phoneKey || a.Value.Kind() != slog.KindString {
		return a
	}
	return slog.String(a.Key, maskPhone(a.Value.String()))
}

// maskPhone keeps the last four digits: "+7 (999) 123-45-67" -> "***4567".
func maskPhone(raw string) string {
	digits := domain.PhoneDigits(raw)
	if len(digits) <= 4 {
		return "***"
	}
	return "***" + digits[len(digits)-4:]
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
