package chat

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// Options holds the flags for the chat subcommand.
type Options struct {
	ServerAddr     string
	Token          string
	ConversationID string
}

func NewOptions() *Options {
	return &Options{
		ServerAddr: "http://127.0.0.1:11870",
	}
}

// NewCmdChat creates the `chat` subcommand.
func NewCmdChat() *cobra.Command {
	o := NewOptions()

	cmd := &cobra.Command{
		Use:                   "chat [message]",
		DisableFlagsInUseLine: true,
		Short:                 "Chat with the cockpit assistant",
		Long: heredoc.Doc(`
			Talk to a running cockpitd server.

			When invoked without arguments, open an interactive terminal chat.
			When invoked with a message argument, send the message and print
			the reply.
		`),
		Example: heredoc.Doc(`
			# Interactive mode
			cockpitctl chat --token=$COCKPIT_TOKEN

			# Single message
			cockpitctl chat --token=$COCKPIT_TOKEN "any colonies near Guerneville?"

			# Continue an existing conversation
			cockpitctl chat --token=$COCKPIT_TOKEN --conversation=<id> "what about Monte Rio?"
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(args)
		},
	}

	cmd.Flags().StringVar(&o.ServerAddr, "server", o.ServerAddr, "cockpitd server address")
	cmd.Flags().StringVar(&o.Token, "token", o.Token, "access token; tier decides what the assistant will do for you")
	cmd.Flags().StringVar(&o.ConversationID, "conversation", o.ConversationID, "conversation ID to continue")

	return cmd
}

func (o *Options) Run(args []string) error {
	client := NewClient(o.ServerAddr, o.Token, o.ConversationID, nil)

	if len(args) == 0 {
		return RunTUI(client)
	}
	return RunOnce(client, strings.Join(args, " "))
}
