// Package cockpitctl is the command line client for a running cockpitd
// server.
package cockpitctl

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/colonyops/cockpit/internal/cockpitctl/chat"
)

// NewCommand creates the `cockpitctl` root command.
func NewCommand() *cobra.Command {
	cmds := &cobra.Command{
		Use:   "cockpitctl",
		Short: "cockpitctl talks to a cockpit assistant server",
		Long: heredoc.Doc(`
			cockpitctl is the terminal client for the cockpit assistant.

			It sends messages to a running cockpitd server and renders the
			replies, either interactively or one message at a time.
		`),
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmds.AddCommand(chat.NewCmdChat())

	return cmds
}
