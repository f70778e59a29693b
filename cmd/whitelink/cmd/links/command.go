// Package links implements `whitelink links`, the operator view of the
// link table.
package links

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/whitelink/cmd/application"
	"github.com/agentstation/whitelink/internal/cmd/output"
	"github.com/agentstation/whitelink/pkg/linker"
	pkglinks "github.com/agentstation/whitelink/pkg/links"
)

// NewCommand returns the links command and its subcommands.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "links",
		GroupID: "core",
		Short:   "Inspect and edit the link table",
		Long: `Links reads and edits the table that maps Discord members to
Minecraft player names. It uses the same file as the running bot.`,
		Example: `  whitelink links list -o json
  whitelink links check 123456789012345678
  whitelink links unlink 123456789012345678`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newCheckCommand(app))
	cmd.AddCommand(newUnlinkCommand(app))
	return cmd
}

func newListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every linked member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}
			table, err := app.Store().Load(cmd.Context())
			if err != nil {
				return err
			}

			records := table.Records()
			if records == nil {
				records = []pkglinks.Record{}
			}
			format = output.DetectFormat(string(format))
			if format == output.FormatTable && len(records) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No linked members.")
				return err
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), records)
		},
	}
}

func newCheckCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "check <member-id>",
		Short: "Show the player linked to a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := app.Engine()
			if err != nil {
				return err
			}
			req := linker.Request{Responder: &consoleResponder{w: cmd.OutOrStdout()}}
			return engine.Check(cmd.Context(), req, args[0], args[0])
		},
	}
}

func newUnlinkCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <member-id>",
		Short: "Unlink a member and remove their player from the whitelist",
		Long: `Unlink removes the member's player from the server whitelist and drops
the link, exactly as /unlinkmc does. Discord roles are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.Console(); err != nil {
				return err
			}
			engine, err := app.Engine()
			if err != nil {
				return err
			}
			req := linker.Request{
				MemberID:  args[0],
				Responder: &consoleResponder{w: cmd.OutOrStdout()},
			}
			return engine.Unlink(cmd.Context(), req)
		},
	}
}

// consoleResponder prints engine replies on the command output.
type consoleResponder struct {
	w io.Writer
}

func (r *consoleResponder) Reply(_ context.Context, content string) error {
	_, err := fmt.Fprintln(r.w, content)
	return err
}
