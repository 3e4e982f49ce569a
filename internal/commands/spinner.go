package commands

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/dtvchat/internal/render"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// spinner draws a waiting indicator on a terminal line until stopped
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	frame   int
	mu      sync.Mutex
	stopped bool
	started bool
}

func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *spinner) start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current frame. Callers hold s.mu.
func (s *spinner) render() {
	theme := render.CurrentTheme()
	color := theme.Brand
	if s.frame%2 == 1 {
		color = theme.BrandStrong
	}

	char := lipgloss.NewStyle().Foreground(color).Bold(true).Render(spinnerFrames[s.frame%len(spinnerFrames)])
	msg := lipgloss.NewStyle().Foreground(theme.Text).Render(strings.TrimRight(s.message, "."))
	dots := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Repeat(".", s.frame%4))

	fmt.Fprintf(s.out, "\r\033[K%s %s%s", char, msg, dots)
}

// halt stops the animation once and waits for the line to be cleared
func (s *spinner) halt() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	close(s.stop)
	s.mu.Unlock()

	if started {
		<-s.done
	}
}

func (s *spinner) stopWithSuccess(message string) {
	s.halt()

	success := render.CurrentTheme().Success
	checkmark := lipgloss.NewStyle().Foreground(success).Bold(true).Render("✓")
	fmt.Fprintf(s.out, "%s %s\n", checkmark, lipgloss.NewStyle().Foreground(success).Render(message))
}

func (s *spinner) stopWithError() {
	s.halt()
}
