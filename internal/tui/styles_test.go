package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/render"
)

func TestFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "missing backend",
			err:      apierrors.NewMissingBackendURLError(),
			contains: []string{"backend URL is not defined", "Hint: Set DTV_BACKEND_URL"},
		},
		{
			name:     "status error",
			err:      apierrors.NewAPIError(503, "/generate-reply", ""),
			contains: []string{"HTTP error! status: 503", "HTTP Status: 503", "Endpoint: /generate-reply", "rejected"},
		},
		{
			name:     "network",
			err:      apierrors.NewNetworkErrorWithEndpoint("generate reply", "/generate-reply", errors.New("refused")),
			contains: []string{"refused", "Endpoint: /generate-reply", "reachable"},
		},
		{
			name:     "timeout",
			err:      apierrors.NewNetworkError("generate reply", fmt.Errorf("request: %w", context.DeadlineExceeded)),
			contains: []string{"timed out"},
		},
		{
			name:     "payload",
			err:      apierrors.NewParseError("response body is not valid JSON", "/generate-reply"),
			contains: []string{"not valid JSON", "could not be read"},
		},
		{
			name:     "plain",
			err:      errors.New("something else"),
			contains: []string{"something else"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatError(tt.err)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("FormatError() = %q, missing %q", out, want)
				}
			}
		})
	}
}

func TestFormatError_Nil(t *testing.T) {
	if got := FormatError(nil); got != "" {
		t.Errorf("FormatError(nil) = %q, want empty", got)
	}
}

func TestFprintError(t *testing.T) {
	var buf bytes.Buffer

	FprintError(&buf, nil)
	if buf.Len() != 0 {
		t.Error("nil error should print nothing")
	}

	FprintError(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") || !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestApplyTheme(t *testing.T) {
	defer ApplyTheme(render.DefaultThemeName)

	if !ApplyTheme("nord") {
		t.Fatal("nord should be accepted")
	}
	if colorBrand != render.NordTheme.Brand {
		t.Errorf("colorBrand = %v, want %v", colorBrand, render.NordTheme.Brand)
	}

	if ApplyTheme("missing") {
		t.Error("unknown theme should be rejected")
	}
	if colorBrand != render.NordTheme.Brand {
		t.Error("unknown theme should leave colours unchanged")
	}
}

func TestFormatError_ClosedClientHasHint(t *testing.T) {
	err := apierrors.NewNetworkErrorWithEndpoint("generate reply", "http://localhost:5000/generate-reply", apierrors.ErrClientClosed)

	if errorHint(err) == "" {
		t.Error("closed client error should carry a hint")
	}
	if !strings.Contains(FormatError(err), "Hint:") {
		t.Error("formatted error should include the hint")
	}
}
