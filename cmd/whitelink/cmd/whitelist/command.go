// Package whitelist implements `whitelink whitelist`, which sends a single
// whitelist command to the server without touching the link table.
package whitelist

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/whitelink/cmd/application"
	"github.com/agentstation/whitelink/internal/cmd/output"
	"github.com/agentstation/whitelink/pkg/errors"
	wl "github.com/agentstation/whitelink/pkg/whitelist"
)

// ErrNotConfirmed is returned when the server reply does not acknowledge the change.
var ErrNotConfirmed = errors.New("server did not confirm the change")

// Result is what the server said about one command.
type Result struct {
	Command string `json:"command" yaml:"command"`
	Outcome string `json:"outcome" yaml:"outcome"`
	Reply   string `json:"reply" yaml:"reply"`
}

// NewCommand returns the whitelist command and its subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "whitelist",
		GroupID: "management",
		Short:   "Send whitelist commands to the server over RCON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newChangeCommand(app, "add", "Add a player to the whitelist", wl.AddCommand, wl.Classify))
	cmd.AddCommand(newChangeCommand(app, "remove", "Remove a player from the whitelist", wl.RemoveCommand, wl.ClassifyRemoval))
	return cmd
}

func newChangeCommand(app application.Application, verb, short string, build func(string) string, classify func(string) wl.Outcome) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <player>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := wl.ValidateName(name); err != nil {
				return err
			}
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			console, err := app.Console()
			if err != nil {
				return err
			}

			command := build(name)
			reply, err := console.Run(cmd.Context(), command)
			if err != nil {
				return err
			}
			outcome := classify(reply)
			app.Logger().Debug().
				Str("address", console.Address()).
				Str("command", command).
				Stringer("outcome", outcome).
				Msg("Whitelist command sent")

			res := Result{Command: command, Outcome: outcome.String(), Reply: reply}
			if err := output.NewFormatter(output.DetectFormat(string(format))).Format(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if outcome != wl.Confirmed {
				return fmt.Errorf("%w: %s", ErrNotConfirmed, command)
			}
			return nil
		},
	}
}
