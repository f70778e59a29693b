package app

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/whitelink/internal/discord"
	"github.com/agentstation/whitelink/internal/server"
	"github.com/agentstation/whitelink/pkg/errors"
	"github.com/agentstation/whitelink/pkg/linker"
)

// NewServeCommand returns the command that runs the bot.
func (a *App) NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Run the Discord bot",
		Long: `Serve connects to Discord, registers /linkmc, /unlinkmc and /checkmc for
the guild and reconciles the whitelist until interrupted. When HEALTH_ADDR
is set, health endpoints are served on that address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("cleanup-commands") {
				a.config.CleanupCommands = mustGetBool(cmd, "cleanup-commands")
			}
			if cmd.Flags().Changed("health-addr") {
				a.config.HealthAddr = mustGetString(cmd, "health-addr")
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().Bool("cleanup-commands", false, "delete the slash commands on shutdown (CLEANUP_COMMANDS)")
	cmd.Flags().String("health-addr", "", "health server listen address, empty disables (HEALTH_ADDR)")
	return cmd
}

func (a *App) serve(ctx context.Context) error {
	if err := a.config.ValidateDiscord(); err != nil {
		return err
	}
	if _, err := a.Console(); err != nil {
		return err
	}

	session, err := discord.NewSession(a.config.DiscordToken)
	if err != nil {
		return err
	}
	return a.runServices(ctx, session)
}

// runServices runs the bot and, when configured, the health server until
// ctx is done or either fails.
func (a *App) runServices(ctx context.Context, session discord.Session) error {
	engine := a.NewEngine(linker.WithRole(discord.NewRoles(session), a.config.RoleID))
	if a.config.RoleID == "" {
		a.logger.Info().Msg("WHITELISTED_ROLE_ID not set, role side effects disabled")
	}

	bot := discord.New(session, engine, a.config.DiscordAppID, a.config.DiscordGuildID,
		discord.WithCleanup(a.config.CleanupCommands),
		discord.WithLogger(a.logger),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(gctx)
	})
	if a.config.HealthAddr != "" {
		cfg := server.DefaultConfig()
		cfg.Addr = a.config.HealthAddr
		srv := server.New(engine, cfg, a.logger)
		g.Go(func() error {
			return srv.Run(gctx)
		})
	}
	if err := g.Wait(); err != nil && !errors.IsCanceled(err) {
		return err
	}
	return nil
}
