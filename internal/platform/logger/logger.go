// Package logger construye el zerolog.Logger del proceso a partir de config.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"dog-training-api/internal/config"
)

func New(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out = zerolog.New(os.Stdout)
	if !strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	return out.Level(level).With().
		Timestamp().
		Str("app", "dog-training-api").
		Logger()
}
