package commands

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/dtvchat/internal/config"
	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/models"
)

func TestAsk_Raw(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")

	if err := h.run("ask", "What is DTV?"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if got := h.stdout.String(); got != "The DTV is a 5-year multiple-entry visa.\n" {
		t.Errorf("stdout = %q, want the bare reply", got)
	}
	if h.stderr.Len() != 0 {
		t.Errorf("non-TTY output should not draw a spinner, stderr = %q", h.stderr.String())
	}
	if h.client.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", h.client.CallCount())
	}
	if len(h.client.LastHistory) != 0 {
		t.Errorf("first question should be sent with empty history, got %v", h.client.LastHistory)
	}
	if !h.client.CloseCalled {
		t.Error("client should be closed")
	}
}

func TestAsk_Decorated(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
	h.tty = true

	if err := h.run("ask", "What is DTV?"); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := h.stdout.String()
	assertContains(t, out, "Consultant")
	assertContains(t, out, "5-year multiple-entry visa")
	assertContains(t, h.stderr.String(), "Reply received")
}

func TestAsk_RawFlagOnTTY(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
	h.tty = true

	if err := h.run("ask", "--raw", "What is DTV?"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(h.stdout.String(), "Consultant") {
		t.Error("--raw should print only the reply")
	}
}

func TestAsk_NoReply(t *testing.T) {
	tests := []struct {
		name  string
		reply *models.ReplyResponse
	}{
		{"absent", nil},
		{"empty", &models.ReplyResponse{AIReply: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
			h.tty = true
			h.client.Reply = tt.reply

			if err := h.run("ask", "hello"); err != nil {
				t.Fatalf("run() error = %v", err)
			}
			assertContains(t, h.stdout.String(), "(no reply)")
		})
	}
}

func TestAsk_NoReplyRaw(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
	h.client.Reply = &models.ReplyResponse{}

	if err := h.run("ask", "hello"); err != nil {
		t.Fatal(err)
	}
	if h.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", h.stdout.String())
	}
}

func TestAsk_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(h *harness)
		args    []string
		wantErr func(error) bool
	}{
		{
			name:    "blank question",
			args:    []string{"ask", "   "},
			wantErr: func(err error) bool { return errors.Is(err, errEmptyQuestion) },
		},
		{
			name:    "no question",
			args:    []string{"ask"},
			wantErr: func(err error) bool { return errors.Is(err, errEmptyQuestion) },
		},
		{
			name: "http status",
			setup: func(h *harness) {
				h.client.ReplyErr = apierrors.NewAPIError(500, "https://dtv.example.com/api/generate-reply", "")
			},
			args:    []string{"ask", "hello"},
			wantErr: apierrors.IsAPIError,
		},
		{
			name: "network",
			setup: func(h *harness) {
				h.client.ReplyErr = apierrors.NewNetworkError("generate reply", errors.New("connection refused"))
			},
			args:    []string{"ask", "hello"},
			wantErr: apierrors.IsNetworkError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
			h.tty = true
			if tt.setup != nil {
				tt.setup(h)
			}

			err := h.run(tt.args...)
			if err == nil || !tt.wantErr(err) {
				t.Errorf("err = %v", err)
			}
			if h.stdout.Len() != 0 {
				t.Errorf("nothing should be printed on failure, got %q", h.stdout.String())
			}
		})
	}
}

func TestAsk_BlankQuestionMakesNoRequest(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")

	_ = h.run("ask", "\n\t ")
	if h.client.CallCount() != 0 {
		t.Error("blank question must not reach the reply service")
	}
}

func TestAsk_MissingBackendURL(t *testing.T) {
	h := newHarness(t)
	h.client.ReplyErr = apierrors.NewMissingBackendURLError()

	err := h.run("ask", "hello")
	if !errors.Is(err, apierrors.ErrMissingBackendURL) {
		t.Errorf("err = %v, want ErrMissingBackendURL", err)
	}
	if h.baseURL != "" {
		t.Errorf("baseURL = %q, want empty", h.baseURL)
	}
}

func TestAsk_OutputFile(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
	h.tty = true
	path := filepath.Join(t.TempDir(), "reply.md")

	if err := h.run("ask", "-o", path, "What is DTV?"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "The DTV is a 5-year multiple-entry visa." {
		t.Errorf("file = %q", data)
	}
	if h.stdout.Len() != 0 {
		t.Error("reply should go to the file only")
	}
	assertContains(t, h.stderr.String(), "Reply saved to "+path)
}

func TestAsk_CopyToClipboard(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
	saveConfig(t, config.Config{TUITheme: "amber", CopyToClipboard: true})
	h.tty = true

	if err := h.run("ask", "What is DTV?"); err != nil {
		t.Fatal(err)
	}
	if len(h.copied) != 1 || h.copied[0] != "The DTV is a 5-year multiple-entry visa." {
		t.Errorf("copied = %v", h.copied)
	}
	assertContains(t, h.stderr.String(), "copied to clipboard")
}

func TestAsk_ClipboardFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
	saveConfig(t, config.Config{TUITheme: "amber", CopyToClipboard: true})
	h.copyErr = errors.New("no clipboard")

	if err := h.run("ask", "What is DTV?"); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	assertContains(t, h.stdout.String(), "5-year multiple-entry visa")
}

func TestAsk_MarkdownReply(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvBackendURL, "https://dtv.example.com")
	cfg := config.DefaultConfig()
	cfg.Markdown.Enabled = true
	cfg.Markdown.Style = "dark"
	saveConfig(t, cfg)
	h.tty = true
	h.client.Reply = &models.ReplyResponse{AIReply: "**Processing** takes 5 to 10 business days."}

	if err := h.run("ask", "How long?"); err != nil {
		t.Fatal(err)
	}
	out := h.stdout.String()
	assertContains(t, out, "Processing")
	if strings.Contains(out, "**Processing**") {
		t.Error("markdown emphasis should be rendered")
	}
}
