package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/dtvchat/internal/chat"
	"github.com/diogo/dtvchat/internal/models"
	"github.com/diogo/dtvchat/internal/render"
)

// errEmptyQuestion is returned when no question text was given
var errEmptyQuestion = errors.New("question cannot be empty")

func newAskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the reply",
		Long: `Send one question to the consulting assistant and print the reply.

The question is taken from -f, piped stdin or the argument, in that order.
Output that is not a terminal is printed raw.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, ok, err := a.readQuestion(args)
			if err != nil {
				return err
			}
			if !ok {
				return errEmptyQuestion
			}
			return a.runAsk(cmd.Context(), question)
		},
	}
	a.addQuestionFlags(cmd.Flags())
	return cmd
}

// runAsk sends one question through a fresh session and prints the reply
func (a *app) runAsk(ctx context.Context, question string) error {
	if strings.TrimSpace(question) == "" {
		return errEmptyQuestion
	}
	raw := a.raw || !a.deps.StdoutIsTTY()

	client, err := a.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	session := chat.NewSession(chat.WithLogger(a.logger))

	var spin *spinner
	if !raw {
		spin = newSpinner(a.deps.Stderr, models.TypingIndicator)
		spin.start()
	}

	outcome, ok := session.Submit(ctx, client, question)
	if !ok {
		if spin != nil {
			spin.stopWithError()
		}
		return errEmptyQuestion
	}
	if outcome.Err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		return outcome.Err
	}
	if spin != nil {
		spin.stopWithSuccess("Reply received")
	}

	var reply string
	if outcome.Appended != nil {
		reply = outcome.Appended.Text
	}
	a.logger.Debug("ask finished", zap.Int("reply_len", len(reply)))

	if reply != "" && a.cfg.CopyToClipboard {
		if err := a.deps.CopyToClipboard(reply); err != nil {
			a.logger.Warn("clipboard copy failed", zap.Error(err))
		} else if !raw {
			fmt.Fprintln(a.deps.Stderr, dimStyle().Render("Reply copied to clipboard"))
		}
	}

	if a.outputFile != "" {
		if err := os.WriteFile(a.outputFile, []byte(reply), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !raw {
			fmt.Fprintln(a.deps.Stderr, dimStyle().Render("Reply saved to "+a.outputFile))
		}
		return nil
	}

	if raw {
		if reply != "" {
			fmt.Fprintln(a.deps.Stdout, reply)
		}
		return nil
	}

	fmt.Fprintln(a.deps.Stdout, a.formatReply(reply))
	return nil
}

// formatReply draws the reply the way the chat view shows consultant turns
func (a *app) formatReply(reply string) string {
	theme := render.CurrentTheme()
	width := a.deps.TerminalWidth()

	label := lipgloss.NewStyle().
		Foreground(theme.Consultant).
		Bold(true).
		Render(models.RoleConsultant.Label())

	if reply == "" {
		return label + "\n" + dimStyle().Render("(no reply)")
	}

	opts := render.OptionsFromConfig(a.cfg.Markdown).WithWidth(width - 4)
	body := render.Reply(reply, a.cfg.Markdown.Enabled, opts)

	bubble := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Consultant).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(width - 2)

	return label + "\n" + bubble.Render(body)
}

func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(render.CurrentTheme().TextDim)
}
