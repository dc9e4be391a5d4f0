// Package logging builds the zerolog logger used for stockroom diagnostics.
// Diagnostics go to stderr; the interactive menu never writes through it.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps the interactive session quiet unless something is wrong.
const DefaultLevel = "warn"

// Config holds logger options.
type Config struct {
	Level   string    // debug, info, warn, error; unknown values fall back to DefaultLevel
	JSON    bool      // structured JSON instead of console output
	NoColor bool      // disable color in console output
	Output  io.Writer // defaults to os.Stderr
}

// ConfigFromEnv returns a Config for level, honoring LOG_FORMAT=json and
// NO_COLOR.
func ConfigFromEnv(level string) Config {
	return Config{
		Level:   level,
		JSON:    os.Getenv("LOG_FORMAT") == "json",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	}

	level := ParseLevel(cfg.Level)
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// ParseLevel converts a level name, falling back to DefaultLevel.
func ParseLevel(s string) zerolog.Level {
	if s == "" {
		s = DefaultLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		level, _ = zerolog.ParseLevel(DefaultLevel)
	}
	return level
}
