package commands

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/dtvchat/internal/api"
	"github.com/diogo/dtvchat/internal/config"
	"github.com/diogo/dtvchat/internal/models"
	"github.com/diogo/dtvchat/internal/tui"
)

// fakeTUI records what the commands asked the TUI to run
type fakeTUI struct {
	chatCalls   int
	configCalls int
	client      api.ReplyClientInterface
	opts        []tui.ModelOption
	err         error
}

func (f *fakeTUI) RunChat(client api.ReplyClientInterface, opts ...tui.ModelOption) error {
	f.chatCalls++
	f.client = client
	f.opts = opts
	return f.err
}

func (f *fakeTUI) RunConfig() error {
	f.configCalls++
	return f.err
}

type harness struct {
	deps   *Dependencies
	stdin  *bytes.Buffer
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	tui    *fakeTUI
	client *api.MockReplyClient

	piped   bool
	tty     bool
	baseURL string
	copied  []string
	copyErr error
}

// newHarness isolates config and environment and wires fakes into Dependencies
func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(config.EnvConfigDir, t.TempDir())
	t.Setenv(config.EnvBackendURL, "")
	t.Setenv(config.EnvPublicBackendURL, "")

	h := &harness{
		stdin:  &bytes.Buffer{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		tui:    &fakeTUI{},
		client: &api.MockReplyClient{
			Reply: &models.ReplyResponse{AIReply: "The DTV is a 5-year multiple-entry visa."},
		},
	}
	h.deps = &Dependencies{
		NewClient: func(baseURL string, logger *zap.Logger) (api.ReplyClientInterface, error) {
			h.baseURL = baseURL
			h.client.URL = baseURL
			return h.client, nil
		},
		TUI:           h.tui,
		Stdin:         h.stdin,
		Stdout:        h.stdout,
		Stderr:        h.stderr,
		StdinIsPiped:  func() bool { return h.piped },
		StdoutIsTTY:   func() bool { return h.tty },
		TerminalWidth: func() int { return 80 },
		CopyToClipboard: func(s string) error {
			if h.copyErr != nil {
				return h.copyErr
			}
			h.copied = append(h.copied, s)
			return nil
		},
	}
	return h
}

func (h *harness) run(args ...string) error {
	cmd := NewRootCmd(h.deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func saveConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output %q does not contain %q", got, want)
	}
}
