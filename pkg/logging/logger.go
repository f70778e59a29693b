// Package logging provides structured logging for whitelink using zerolog.
// Console output is used when stderr is a terminal, JSON otherwise, so the
// bot logs cleanly both in a shell and under a process supervisor.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("member_id", "1234").Msg("Linking account")
//
//	ctx := logging.WithMember(context.Background(), "1234")
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	defaultLogger zerolog.Logger

	// Nop discards everything.
	Nop = zerolog.Nop()
)

func init() {
	defaultLogger = NewLoggerFromConfig(envConfig())
}

// envConfig reads LOG_LEVEL, LOG_FORMAT and LOG_OUTPUT so that log calls
// made before the CLI has parsed its configuration already honour them.
func envConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Err creates a new error log event with the given error.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
