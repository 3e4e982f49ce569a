package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/dtvchat/internal/config"
	"github.com/diogo/dtvchat/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewBackendURL
	viewTUIThemeSelect
	viewStyleSelect // markdown style
)

// Menu item indices for main view
const (
	menuBackendURL = iota
	menuTUITheme
	menuMarkdown
	menuMarkdownStyle
	menuVerbose
	menuCopyToClipboard
	menuExit
	menuItemCount
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config    config.Config
	configDir string
	logPath   string

	// Navigation
	view        configView
	cursor      int
	themeCursor int
	styleCursor int

	urlInput textinput.Model

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a new config TUI model from the saved configuration
func NewConfigModel() ConfigModel {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	configDir, _ := config.GetConfigDir()
	logPath, _ := config.GetLogPath(cfg)

	if cfg.TUITheme == "" {
		cfg.TUITheme = render.DefaultThemeName
	}
	ApplyTheme(cfg.TUITheme)

	ti := textinput.New()
	ti.Placeholder = "https://dtv-backend.example.com"
	ti.CharLimit = 512
	ti.Prompt = "› "

	return ConfigModel{
		config:          cfg,
		configDir:       configDir,
		logPath:         logPath,
		view:            viewMain,
		themeCursor:     indexOf(render.ThemeNames(), cfg.TUITheme),
		styleCursor:     indexOf(render.MarkdownStyles(), cfg.Markdown.Style),
		urlInput:        ti,
		feedbackTimeout: 2 * time.Second,
	}
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.urlInput.Width = m.width - 16

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		if m.view == viewBackendURL {
			return m.updateBackendURL(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view != viewMain {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			m.moveCursor(-1)

		case "down", "j":
			m.moveCursor(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// moveCursor moves the cursor of the current view, wrapping around
func (m *ConfigModel) moveCursor(step int) {
	wrap := func(i, n int) int {
		return ((i+step)%n + n) % n
	}

	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor, menuItemCount)
	case viewTUIThemeSelect:
		m.themeCursor = wrap(m.themeCursor, len(render.ThemeNames()))
	case viewStyleSelect:
		m.styleCursor = wrap(m.styleCursor, len(render.MarkdownStyles()))
	}
}

// updateBackendURL handles keys while the backend URL is edited
func (m ConfigModel) updateBackendURL(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.urlInput.Blur()
		m.view = viewMain
		return m, nil

	case "enter":
		raw := strings.TrimSpace(m.urlInput.Value())
		if raw == "" {
			m.config.BackendURL = ""
			m = m.save("Backend URL cleared")
		} else {
			url, err := config.ValidateBackendURL(raw)
			if err != nil {
				m.feedback = fmt.Sprintf("Error: %v", err)
				return m, clearFeedback(m.feedbackTimeout)
			}
			m.config.BackendURL = url
			m = m.save("Backend URL set to " + url)
		}
		m.urlInput.Blur()
		m.view = viewMain
		return m, clearFeedback(m.feedbackTimeout)
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

// save writes the config and sets feedback to ok or the error
func (m ConfigModel) save(ok string) ConfigModel {
	if err := config.SaveConfig(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
	} else {
		m.feedback = ok
	}
	return m
}

func stateWord(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuBackendURL:
			m.view = viewBackendURL
			m.urlInput.SetValue(m.config.BackendURL)
			m.urlInput.CursorEnd()
			return m, m.urlInput.Focus()

		case menuTUITheme:
			m.view = viewTUIThemeSelect
			return m, nil

		case menuMarkdown:
			m.config.Markdown.Enabled = !m.config.Markdown.Enabled
			m = m.save("Markdown replies " + stateWord(m.config.Markdown.Enabled))
			return m, clearFeedback(m.feedbackTimeout)

		case menuMarkdownStyle:
			m.view = viewStyleSelect
			return m, nil

		case menuVerbose:
			m.config.Verbose = !m.config.Verbose
			m = m.save("Verbose logging " + stateWord(m.config.Verbose))
			return m, clearFeedback(m.feedbackTimeout)

		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			m = m.save("Copy to clipboard " + stateWord(m.config.CopyToClipboard))
			return m, clearFeedback(m.feedbackTimeout)

		case menuExit:
			return m, tea.Quit
		}

	case viewTUIThemeSelect:
		selected := render.ThemeNames()[m.themeCursor]
		m.config.TUITheme = selected
		ApplyTheme(selected)
		m = m.save("TUI theme set to " + selected)
		m.view = viewMain
		return m, clearFeedback(m.feedbackTimeout)

	case viewStyleSelect:
		selected := render.MarkdownStyles()[m.styleCursor]
		m.config.Markdown.Style = selected
		m = m.save("Markdown style set to " + selected)
		m.view = viewMain
		return m, clearFeedback(m.feedbackTimeout)
	}

	return m, nil
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	header := configHeaderStyle.Width(contentWidth).Render(configTitleStyle.Render("✦ dtvchat configuration"))
	sections = append(sections, header)

	paths := lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Paths"),
		fmt.Sprintf("   Config: %s", configPathStyle.Render(filepath.Join(m.configDir, "config.json"))),
		fmt.Sprintf("   Log:    %s", configPathStyle.Render(m.logPath)),
	)
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(paths))

	var settings string
	switch m.view {
	case viewMain:
		settings = m.renderMainMenu()
	case viewBackendURL:
		settings = m.renderBackendURL()
	case viewTUIThemeSelect:
		settings = m.renderThemeSelect()
	case viewStyleSelect:
		settings = m.renderStyleSelect()
	}
	sections = append(sections, configPanelStyle.Width(contentWidth).Render(settings))

	if m.feedback != "" {
		mark := "✓ "
		if strings.HasPrefix(m.feedback, "Error") {
			mark = "✗ "
		}
		sections = append(sections, configFeedbackStyle.Render(mark+m.feedback))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders one menu entry with its current value
func (m ConfigModel) menuLine(index int, label, value string) string {
	cursor := "  "
	style := configMenuItemStyle
	if m.cursor == index {
		cursor = configCursorStyle.Render("▸ ")
		style = configMenuSelectedStyle
	}
	if value == "" {
		return cursor + style.Render(label)
	}
	return fmt.Sprintf("%s%s%s", cursor, style.Render(fmt.Sprintf("%-20s", label)), value)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu() string {
	backend := configValueStyle.Render(m.config.BackendURL)
	if m.config.BackendURL == "" {
		backend = configDisabledStyle.Render("not set")
	}

	items := []string{
		configSectionTitleStyle.Render("Settings"),
		"",
		m.menuLine(menuBackendURL, "Backend URL", backend),
		m.menuLine(menuTUITheme, "TUI Theme", configValueStyle.Render(m.config.TUITheme)),
		m.menuLine(menuMarkdown, "Markdown Replies", m.renderBoolValue(m.config.Markdown.Enabled)),
		m.menuLine(menuMarkdownStyle, "Markdown Style", configValueStyle.Render(m.config.Markdown.Style)),
		m.menuLine(menuVerbose, "Verbose Logging", m.renderBoolValue(m.config.Verbose)),
		m.menuLine(menuCopyToClipboard, "Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)),
		"",
		m.menuLine(menuExit, "Exit", ""),
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m ConfigModel) renderBackendURL() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		configSectionTitleStyle.Render("Backend URL"),
		"",
		m.urlInput.View(),
		"",
		hintStyle.Render("DTV_BACKEND_URL and --backend-url take precedence. Leave empty to clear."),
	)
}

// renderThemeSelect renders the TUI theme selection sub-menu
func (m ConfigModel) renderThemeSelect() string {
	items := []string{configSectionTitleStyle.Render("Select TUI Theme"), ""}

	for i, theme := range render.Themes() {
		cursor := "  "
		style := configMenuItemStyle
		if m.themeCursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}

		current := ""
		if theme.Name == m.config.TUITheme {
			current = configStatusOkStyle.Render(" (current)")
		}

		items = append(items, cursor+style.Render(theme.Name+" - "+theme.Description)+current)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderStyleSelect renders the markdown style selection sub-menu
func (m ConfigModel) renderStyleSelect() string {
	items := []string{configSectionTitleStyle.Render("Select Markdown Style"), ""}

	for i, name := range render.MarkdownStyles() {
		cursor := "  "
		style := configMenuItemStyle
		if m.styleCursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}

		current := ""
		if name == m.config.Markdown.Style {
			current = configStatusOkStyle.Render(" (current)")
		}

		items = append(items, cursor+style.Render(name)+current)
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// renderStatusBar renders the bottom status bar
func (m ConfigModel) renderStatusBar(width int) string {
	type shortcut struct {
		key  string
		desc string
	}

	var shortcuts []shortcut
	switch m.view {
	case viewMain:
		shortcuts = []shortcut{{"↑↓", "Navigate"}, {"Enter", "Select"}, {"Esc", "Exit"}}
	case viewBackendURL:
		shortcuts = []shortcut{{"Enter", "Save"}, {"Esc", "Cancel"}}
	default:
		shortcuts = []shortcut{{"↑↓", "Navigate"}, {"Enter", "Select"}, {"Esc", "Back"}}
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return configStatusBarStyle.Width(width).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the config TUI
func RunConfig() error {
	m := NewConfigModel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
