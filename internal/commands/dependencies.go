package commands

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/dtvchat/internal/api"
	"github.com/diogo/dtvchat/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(client api.ReplyClientInterface, opts ...tui.ModelOption) error
	RunConfig() error
}

// ClientFactory builds a reply client for a resolved backend URL.
// baseURL may be empty; the client then fails each call with a
// configuration error.
type ClientFactory func(baseURL string, logger *zap.Logger) (api.ReplyClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	NewClient ClientFactory
	TUI       TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsPiped reports whether input is redirected rather than a terminal
	StdinIsPiped func() bool
	// StdoutIsTTY reports whether output goes to a terminal
	StdoutIsTTY func() bool
	// TerminalWidth returns the output width in columns
	TerminalWidth func() int

	CopyToClipboard func(string) error
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(client api.ReplyClientInterface, opts ...tui.ModelOption) error {
	return tui.RunChat(client, opts...)
}

func (d *DefaultTUI) RunConfig() error {
	return tui.RunConfig()
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:       newReplyClient,
		TUI:             &DefaultTUI{},
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		StdinIsPiped:    stdinIsPiped,
		StdoutIsTTY:     isStdoutTTY,
		TerminalWidth:   getTerminalWidth,
		CopyToClipboard: clipboard.WriteAll,
	}
}

func newReplyClient(baseURL string, logger *zap.Logger) (api.ReplyClientInterface, error) {
	return api.NewClient(baseURL, api.WithLogger(logger))
}

func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
