package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/dtvchat/internal/render"
	"github.com/diogo/dtvchat/internal/tui"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session with the DTV consulting assistant.

Every question is sent with the conversation so far. The conversation is
kept in memory only and is gone when the session ends.
Press Esc or Ctrl+C to end the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat()
		},
	}
}

func (a *app) runChat() error {
	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	return a.deps.TUI.RunChat(client, a.chatOptions()...)
}

func (a *app) chatOptions() []tui.ModelOption {
	opts := []tui.ModelOption{tui.WithLogger(a.logger)}
	if a.cfg.Markdown.Enabled {
		opts = append(opts, tui.WithMarkdown(render.OptionsFromConfig(a.cfg.Markdown)))
	}
	return opts
}
