package app

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/whitelink/cmd/whitelink/cmd/links"
	"github.com/agentstation/whitelink/cmd/whitelink/cmd/whitelist"
)

// Execute runs the CLI with args. It is the entry point used by main.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "whitelink",
		Short:   "Keep a Minecraft whitelist in sync with a Discord guild",
		Version: a.version,
		Long: `whitelink links Discord members to Minecraft accounts. Members run
/linkmc to whitelist their player; leaving the guild or losing the linked
role removes them again. The server is driven over RCON and the links are
kept in a JSON file.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.whitelink.yaml)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: table, json, yaml")
	flags.StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("whitelink {{.Version}}\n")

	rootCmd.AddCommand(a.NewServeCommand())
	rootCmd.AddCommand(links.NewCommand(a))
	rootCmd.AddCommand(whitelist.NewCommand(a))
	rootCmd.AddCommand(a.NewVersionCommand())

	return rootCmd
}

// setupCommand reloads the config file named by --config, reapplies the
// flags on top and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if cmd.Flags().Changed("config") {
		config, err := LoadConfigFile(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(verbose, quiet, format, logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// NewVersionCommand returns the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "whitelink version %s\n", a.version)
			fmt.Fprintf(w, "commit: %s\n", a.commit)
			fmt.Fprintf(w, "built: %s\n", a.date)
			fmt.Fprintf(w, "built by: %s\n", a.builtBy)
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
