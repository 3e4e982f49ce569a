package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_NotVerboseIsNop(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("non-verbose logger should be a no-op")
	}
}

func TestNew_VerboseRequiresFile(t *testing.T) {
	if _, err := New(Options{Verbose: true}); err == nil {
		t.Error("expected error when no log file is given")
	}
}

func TestNew_VerboseWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dtvchat.log")

	logger, err := New(Options{Verbose: true, File: path})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Debug("submit", zap.Int("history_len", 2))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"submit"`) {
		t.Errorf("log file missing entry: %s", data)
	}
	if !strings.Contains(string(data), `"history_len":2`) {
		t.Errorf("log file missing field: %s", data)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) should return a logger")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Error("OrNop should return the given logger")
	}
}
