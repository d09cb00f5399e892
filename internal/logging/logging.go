package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. The level string comes from LOG_LEVEL;
// anything unparseable falls back to info.
func New(level string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()

	return logger.Level(parsed)
}
