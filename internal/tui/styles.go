// Package tui provides the terminal user interface for dtvchat.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorBrand       lipgloss.Color
	colorBrandStrong lipgloss.Color
	colorClient      lipgloss.Color
	colorConsultant  lipgloss.Color
	colorSuccess     lipgloss.Color
	colorError       lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	tagStyle      lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style

	clientLabelStyle      lipgloss.Style
	clientBubbleStyle     lipgloss.Style
	consultantLabelStyle  lipgloss.Style
	consultantBubbleStyle lipgloss.Style

	welcomeTitleStyle       lipgloss.Style
	welcomeTextStyle        lipgloss.Style
	suggestionStyle         lipgloss.Style
	suggestionSelectedStyle lipgloss.Style

	inputPanelStyle         lipgloss.Style
	inputPanelDisabledStyle lipgloss.Style
	sendStyle               lipgloss.Style
	sendDisabledStyle       lipgloss.Style

	// Typing indicator and spinner
	loadingStyle lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	footerStyle     lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle      lipgloss.Style
	alertStyle      lipgloss.Style
	alertTitleStyle lipgloss.Style

	// Config menu styles
	configHeaderStyle       lipgloss.Style
	configTitleStyle        lipgloss.Style
	configPanelStyle        lipgloss.Style
	configSectionTitleStyle lipgloss.Style
	configMenuItemStyle     lipgloss.Style
	configMenuSelectedStyle lipgloss.Style
	configCursorStyle       lipgloss.Style
	configValueStyle        lipgloss.Style
	configEnabledStyle      lipgloss.Style
	configDisabledStyle     lipgloss.Style
	configPathStyle         lipgloss.Style
	configStatusOkStyle     lipgloss.Style
	configFeedbackStyle     lipgloss.Style
	configStatusBarStyle    lipgloss.Style
)

func init() {
	UpdateTheme()
}

// ApplyTheme activates the named theme and rebuilds the styles.
// Unknown names leave the current theme in place.
func ApplyTheme(name string) bool {
	if !render.SetTheme(name) {
		return false
	}
	UpdateTheme()
	return true
}

// UpdateTheme refreshes all styles based on the current theme
func UpdateTheme() {
	theme := render.CurrentTheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorBrand = theme.Brand
	colorBrandStrong = theme.BrandStrong
	colorClient = theme.Client
	colorConsultant = theme.Consultant
	colorSuccess = theme.Success
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorBrand).
		Bold(true)

	tagStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorBrand).
		Bold(true).
		Padding(0, 1).
		MarginLeft(1)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	// Client messages sit on the right, consultant replies on the left
	clientLabelStyle = lipgloss.NewStyle().
		Foreground(colorClient).
		Bold(true).
		MarginLeft(4)

	clientBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorClient).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	consultantLabelStyle = lipgloss.NewStyle().
		Foreground(colorConsultant).
		Bold(true)

	consultantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorConsultant).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorBrand).
		Bold(true)

	welcomeTextStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	suggestionStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Foreground(colorText).
		Padding(0, 1)

	suggestionSelectedStyle = suggestionStyle.
		BorderForeground(colorBrand).
		Foreground(colorBrand).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBrand).
		Padding(0, 1)

	inputPanelDisabledStyle = inputPanelStyle.
		BorderForeground(colorTextMute)

	sendStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorBrandStrong).
		Bold(true).
		Padding(0, 1)

	sendDisabledStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Background(colorSurface).
		Faint(true).
		Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorBrand).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	footerStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	alertStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(colorError).
		Padding(1, 3)

	alertTitleStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		MarginBottom(1)

	configHeaderStyle = lipgloss.NewStyle().
		Foreground(colorBrand).
		Bold(true).
		MarginBottom(1).
		Align(lipgloss.Center)

	configTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		MarginBottom(1).
		PaddingLeft(1)

	configPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2)

	configSectionTitleStyle = lipgloss.NewStyle().
		Foreground(colorBrandStrong).
		Bold(true).
		MarginTop(1)

	configMenuItemStyle = lipgloss.NewStyle().
		Foreground(colorText).
		PaddingLeft(2)

	configMenuSelectedStyle = lipgloss.NewStyle().
		Foreground(colorBrand).
		Bold(true)

	configCursorStyle = lipgloss.NewStyle().
		Foreground(colorBrand)

	configValueStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	configEnabledStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	configDisabledStyle = lipgloss.NewStyle().
		Foreground(colorError)

	configPathStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	configStatusOkStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	configFeedbackStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		MarginTop(1)

	configStatusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		MarginTop(1).
		Align(lipgloss.Center)
}

// errorHint returns a short suggestion for the kind of err, or ""
func errorHint(err error) string {
	switch {
	case errors.IsConfigError(err):
		return "Set DTV_BACKEND_URL or run 'dtvchat config' to point at the reply service"
	case errors.IsTimeoutError(err):
		return "The request timed out. Try again"
	case errors.IsNetworkError(err):
		return "Check that the reply service is running and reachable"
	case errors.IsAPIError(err):
		return "The reply service rejected the request. Try again later"
	case errors.IsParseError(err):
		return "The reply service sent a response that could not be read"
	}
	return ""
}

// FormatError returns a styled error message with additional context
// taken from the structured error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}
	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}
	if hint := errorHint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}

// FprintError writes a styled error message to w
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, FormatError(err))
}
