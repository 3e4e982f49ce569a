package render

import (
	"strings"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != "dark" {
		t.Errorf("expected Style='dark', got %s", opts.Style)
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false")
	}
	if !opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=true")
	}
}

func TestOptionsWithWidth(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{120, 120},
		{20, 20},
		{5, 20},
		{-1, 20},
	}

	for _, tt := range tests {
		if got := DefaultOptions().WithWidth(tt.in).Width; got != tt.want {
			t.Errorf("WithWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOptionsWithStyle(t *testing.T) {
	opts := DefaultOptions().WithStyle("light")

	if opts.Style != "light" {
		t.Errorf("expected Style='light', got %s", opts.Style)
	}
	if opts.Width != 80 {
		t.Error("WithStyle should not change the width")
	}
}

func TestMarkdown(t *testing.T) {
	ClearCache()
	defer ClearCache()

	out, err := Markdown("# Processing\n\nUsually **5-10** business days.", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Processing") {
		t.Errorf("output missing heading text: %q", out)
	}
	if !strings.Contains(out, "business days") {
		t.Errorf("output missing body text: %q", out)
	}
}

func TestMarkdown_InvalidStyle(t *testing.T) {
	ClearCache()
	defer ClearCache()

	if _, err := Markdown("text", DefaultOptions().WithStyle("no/such/style.json")); err == nil {
		t.Error("expected error for invalid style")
	}
}

func TestReply(t *testing.T) {
	ClearCache()
	defer ClearCache()

	const text = "DTV is a **5-year** visa."

	t.Run("verbatim when markdown disabled", func(t *testing.T) {
		if got := Reply(text, false, DefaultOptions()); got != text {
			t.Errorf("Reply() = %q, want verbatim %q", got, text)
		}
	})

	t.Run("rendered when markdown enabled", func(t *testing.T) {
		got := Reply(text, true, DefaultOptions())
		if !strings.Contains(got, "visa") {
			t.Errorf("rendered reply lost its text: %q", got)
		}
		if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
			t.Errorf("rendered reply should be trimmed of blank lines: %q", got)
		}
	})

	t.Run("falls back to verbatim on style error", func(t *testing.T) {
		got := Reply(text, true, DefaultOptions().WithStyle("no/such/style.json"))
		if got != text {
			t.Errorf("Reply() = %q, want verbatim fallback", got)
		}
	})
}
