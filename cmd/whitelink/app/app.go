// Package app wires configuration, logging and the long-lived collaborators
// of the whitelink CLI, and builds the cobra command tree around them.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/cmd/application"
	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/linker"
	"github.com/agentstation/whitelink/pkg/links"
	"github.com/agentstation/whitelink/pkg/rcon"
)

// App holds the whitelink process state shared by every command.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Lazily built collaborators
	mu      sync.Mutex
	store   links.Store
	console application.Console
	engine  *linker.Engine
}

var _ application.Application = (*App)(nil)

// New creates an App with configuration loaded from the environment.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the --format flag value.
func (a *App) OutputFormat() string { return a.config.Format }

// Store returns the link table store, a FileStore at LINKS_FILE unless one
// was injected.
func (a *App) Store() links.Store {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store == nil {
		a.store = links.NewFileStore(a.config.LinksFile, links.WithLogger(a.logger))
	}
	return a.store
}

// Console returns the RCON client. It fails with a ConfigError when the RCON
// settings are incomplete.
func (a *App) Console() (application.Console, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.consoleLocked()
}

func (a *App) consoleLocked() (application.Console, error) {
	if a.console != nil {
		return a.console, nil
	}
	if err := a.config.ValidateRCON(); err != nil {
		return nil, err
	}
	a.console = rcon.New(a.config.RCONHost, a.config.RCONPort, a.config.RCONPassword,
		rcon.WithTimeout(a.config.RCONTimeout),
		rcon.WithLogger(a.logger),
	)
	return a.console, nil
}

// Engine returns the shared engine. It has no role side effects; the bot
// builds its own through NewEngine.
func (a *App) Engine() (*linker.Engine, error) {
	a.mu.Lock()
	engine := a.engine
	a.mu.Unlock()
	if engine != nil {
		return engine, nil
	}

	engine = a.NewEngine()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.engine == nil {
		a.engine = engine
	}
	return a.engine, nil
}

// NewEngine builds an engine over Store and Console with extra options.
// Without RCON settings the engine still answers reads, and every remote
// command it sends comes back unknown.
func (a *App) NewEngine(opts ...linker.Option) *linker.Engine {
	store := a.Store()

	a.mu.Lock()
	console, err := a.consoleLocked()
	a.mu.Unlock()

	var exec rcon.Executor = offlineExecutor{}
	if err == nil {
		exec = console
	}
	opts = append([]linker.Option{linker.WithLogger(a.logger)}, opts...)
	return linker.New(store, exec, opts...)
}

// Shutdown releases resources. Nothing is held open between commands.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutdown complete")
	return nil
}

// offlineExecutor stands in for the console when RCON is not configured.
type offlineExecutor struct{}

func (offlineExecutor) Execute(context.Context, string) string { return "" }

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore injects a link table store.
func WithStore(store links.Store) Option {
	return func(a *App) error {
		a.store = store
		return nil
	}
}

// WithConsole injects an RCON console.
func WithConsole(console application.Console) Option {
	return func(a *App) error {
		a.console = console
		return nil
	}
}
