package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/logging"
)

// NewLogger creates the application logger.
// Log level precedence (highest to lowest):
//  1. --log-level flag or LOG_LEVEL
//  2. -q/--quiet (warn), which beats -v when both are set
//  3. -v/--verbose (debug)
//  4. info
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		AddCaller: level == "debug" || level == "trace",
	})
}

func determineLogLevel(config *Config) string {
	if config.LogLevel != "" {
		validated := validateLogLevel(config.LogLevel)
		if validated != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, validated)
		}
		return validated
	}
	if config.Verbose && config.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet\n")
		return "warn"
	}
	if config.Quiet {
		return "warn"
	}
	if config.Verbose {
		return "debug"
	}
	return "info"
}

func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	default:
		return "info"
	}
}
