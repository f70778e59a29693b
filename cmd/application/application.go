// Package application defines what the whitelink subcommands need from the
// process-wide App, so each command can be tested against a Mock.
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            table, err := app.Store().Load(cmd.Context())
//	            ...
//	        },
//	    }
//	}
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/whitelink/pkg/linker"
	"github.com/agentstation/whitelink/pkg/links"
)

// Console runs single RCON commands. *rcon.Client implements it.
type Console interface {
	// Execute returns the reply, or "" on any failure.
	Execute(ctx context.Context, command string) string
	// Run returns the reply or the transport error.
	Run(ctx context.Context, command string) (string, error)
	// Address is the host:port dialed.
	Address() string
}

// Application is implemented by the App in cmd/whitelink/app.
// All methods are safe for concurrent use.
type Application interface {
	// Store returns the link table store.
	Store() links.Store

	// Console returns the RCON console, or a ConfigError when RCON is not
	// configured.
	Console() (Console, error)

	// Engine returns a reconciliation engine without role side effects,
	// backed by Store and Console.
	Engine() (*linker.Engine, error)

	// Logger returns the configured logger.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml)
	// or "" for auto-detection.
	OutputFormat() string

	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
