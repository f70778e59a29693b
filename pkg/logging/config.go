package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/constants"
)

// Config describes where and how the bot logs. It mirrors the LOG_LEVEL,
// LOG_FORMAT and LOG_OUTPUT settings.
type Config struct {
	// Level is a zerolog level name; "off" and "none" disable logging.
	Level string

	// Format is auto, json or console. Auto picks console on a terminal.
	Format string

	// Output is stderr, stdout, discard or a file path opened for append.
	Output string

	NoColor   bool
	AddCaller bool

	// Fields are attached to every event, e.g. {"guild_id": "..."}.
	Fields map[string]any
}

// DefaultConfig returns info level auto-format logging to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:   "info",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig builds a logger and sets the zerolog global level.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logCtx := zerolog.New(writerFor(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logCtx = logCtx.Caller()
	}
	for k, v := range cfg.Fields {
		logCtx = addFieldToContext(logCtx, k, v)
	}
	return logCtx.Logger()
}

// Configure replaces the default logger.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

func writerFor(cfg *Config) io.Writer {
	out, tty := openOutput(cfg.Output)

	switch strings.ToLower(cfg.Format) {
	case "json":
		return out
	case "console", "pretty":
	default:
		if !tty {
			return out
		}
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: cfg.NoColor}
}

// openOutput resolves the output setting. An unwritable file path falls
// back to stderr.
func openOutput(output string) (io.Writer, bool) {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr, isTerminal(os.Stderr)
	case "stdout":
		return os.Stdout, isTerminal(os.Stdout)
	case "discard", "none":
		return io.Discard, false
	}
	f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, isTerminal(os.Stderr)
	}
	return f, false
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return l
}
