package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/dtvchat/internal/render"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the reply service is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			status, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			if !status.OK() {
				return fmt.Errorf("reply service at %s reported status %q", client.BaseURL(), status.Status)
			}

			ok := lipgloss.NewStyle().Foreground(render.CurrentTheme().Success)
			fmt.Fprintln(a.deps.Stdout, ok.Render(fmt.Sprintf("✓ %s is up (status: %s)", client.BaseURL(), status.Status)))
			return nil
		},
	}
}
