package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds the zerolog logger shared by every service. Level comes from
// LOG_LEVEL, format from LOG_FORMAT ("console" for local development,
// anything else means JSON). Defaults to info/JSON on stdout.
func New(service string) zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	writer := os.Stdout
	zerolog.TimeFieldFormat = time.RFC3339Nano

	base := zerolog.New(writer)
	if strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "console") {
		base = zerolog.New(zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339})
	}

	return base.Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
}
