package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogLevel = "warn"

// newLogger builds the command logger from --log-level, XLSXCUTTER_LOG_LEVEL
// and --log-format.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	level := logLevel
	if level == "" {
		level = os.Getenv("XLSXCUTTER_LOG_LEVEL")
	}
	if level == "" {
		level = defaultLogLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q", level)
	}

	var logger zerolog.Logger
	switch logFormat {
	case "", "console":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly})
	case "json":
		logger = zerolog.New(w)
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format: %s (must be console or json)", logFormat)
	}
	return logger.Level(lvl).With().Timestamp().Logger(), nil
}
