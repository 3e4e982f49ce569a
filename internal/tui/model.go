package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/dtvchat/internal/api"
	"github.com/diogo/dtvchat/internal/chat"
	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/logging"
	"github.com/diogo/dtvchat/internal/models"
	"github.com/diogo/dtvchat/internal/render"
)

const (
	noticeTimeout = 2 * time.Second
	noSuggestion  = -1

	sendLabel         = "Send ➤"
	sendDisabledLabel = "Send ·"
)

// Message types for the TUI
type (
	// replyMsg carries the result of one exchange back to Update
	replyMsg struct {
		ex   chat.Exchange
		resp *models.ReplyResponse
		err  error
	}
	noticeClearMsg struct{}
)

// Model is the chat session view
type Model struct {
	client  api.ReplyClientInterface
	session *chat.Session
	logger  *zap.Logger

	// Consultant replies go through glamour only when markdown is set
	markdown   bool
	renderOpts render.Options

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// State
	suggestionCursor int
	alert            error
	notice           string
	ready            bool
	quitting         bool

	copyFn func(string) error

	// Dimensions
	width  int
	height int
}

// ModelOption configures a chat Model
type ModelOption func(*Model)

// WithLogger sets the logger for view events
func WithLogger(logger *zap.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logging.OrNop(logger)
	}
}

// WithMarkdown renders consultant replies as markdown with opts
func WithMarkdown(opts render.Options) ModelOption {
	return func(m *Model) {
		m.markdown = true
		m.renderOpts = opts
	}
}

// NewChatModel creates the chat view for a fresh session
func NewChatModel(client api.ReplyClientInterface, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Placeholder = models.InputPlaceholder
	ti.CharLimit = 0 // unlimited
	ti.Prompt = "› "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorBrand)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextMute)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	m := Model{
		client:           client,
		logger:           zap.NewNop(),
		renderOpts:       render.DefaultOptions(),
		input:            ti,
		spinner:          s,
		suggestionCursor: noSuggestion,
		copyFn:           clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.session = chat.NewSession(chat.WithLogger(m.logger))
	return m
}

// Session exposes the underlying chat session
func (m Model) Session() *chat.Session {
	return m.session
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func clearNotice() tea.Cmd {
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return noticeClearMsg{}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshTranscript()
		return m, nil

	case tea.KeyMsg:
		if m.alert != nil {
			return m.updateAlert(msg)
		}
		return m.updateKeys(msg)

	case replyMsg:
		outcome := m.session.CompleteResponse(msg.ex, msg.resp, msg.err)
		if outcome.Discarded {
			return m, nil
		}
		m.input.Focus()
		if outcome.Err != nil {
			m.logger.Warn("showing connection error", zap.String("kind", apierrors.Kind(outcome.Err)))
			m.alert = outcome.Err
		}
		m.refreshTranscript()
		return m, textinput.Blink

	case noticeClearMsg:
		m.notice = ""
		return m, nil

	case spinner.TickMsg:
		if m.session.AwaitingReply() {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// updateAlert handles keys while the connection error is shown.
// Everything but dismiss is swallowed.
func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "enter", "esc":
		m.alert = nil
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "ctrl+c":
		return m.quit()

	case "esc":
		if m.notice != "" {
			m.notice = ""
			return m, nil
		}
		return m.quit()

	case "enter":
		return m.submit()

	case "tab":
		return m.cycleSuggestion(1), nil

	case "shift+tab":
		return m.cycleSuggestion(-1), nil

	case "alt+1", "alt+2", "alt+3":
		i := int(msg.String()[len("alt+")] - '1')
		return m.selectSuggestion(i), nil

	case "ctrl+y":
		return m.copyLastReply()

	case "pgup", "pgdown", "up", "down":
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Input is disabled while a reply is awaited
	if m.session.AwaitingReply() {
		return m, nil
	}
	m.input, cmd = m.input.Update(msg)
	m.session.SetPendingInput(m.input.Value())
	return m, cmd
}

// submit starts an exchange with the pending input
func (m Model) submit() (tea.Model, tea.Cmd) {
	ex, ok := m.session.Begin(m.session.PendingInput())
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.input.Blur()
	m.suggestionCursor = noSuggestion
	m.refreshTranscript()

	return m, tea.Batch(m.requestReply(ex), m.spinner.Tick)
}

// requestReply runs the network call off the update loop
func (m Model) requestReply(ex chat.Exchange) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.GenerateReply(context.Background(), ex.ClientSequence, ex.ChatHistory)
		return replyMsg{ex: ex, resp: resp, err: err}
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.session.Close()
	m.quitting = true
	return m, tea.Quit
}

// suggestionsVisible reports whether the welcome panel is on screen
func (m Model) suggestionsVisible() bool {
	return m.session.IsEmpty() && !m.session.AwaitingReply()
}

func (m Model) cycleSuggestion(step int) Model {
	if !m.suggestionsVisible() {
		return m
	}
	n := len(models.Suggestions())
	next := m.suggestionCursor + step
	if m.suggestionCursor == noSuggestion && step < 0 {
		next = n - 1
	}
	return m.selectSuggestion((next%n + n) % n)
}

func (m Model) selectSuggestion(i int) Model {
	if !m.suggestionsVisible() {
		return m
	}
	text, ok := m.session.SuggestionAt(i)
	if !ok {
		return m
	}
	m.suggestionCursor = i
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m
}

func (m Model) copyLastReply() (tea.Model, tea.Cmd) {
	reply, ok := m.session.LastReply()
	if !ok {
		m.notice = "No reply to copy yet"
		return m, clearNotice()
	}
	if err := m.copyFn(reply); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		m.notice = fmt.Sprintf("Could not copy: %v", err)
		return m, clearNotice()
	}
	m.notice = "Copied last reply to clipboard"
	return m, clearNotice()
}

// layout sizes the viewport and input from the window
func (m *Model) layout() {
	headerHeight := 4 // bordered title and subtitle
	inputHeight := 3  // bordered single line
	typingHeight := 1
	statusHeight := 2 // key hints and footer

	vpHeight := m.height - headerHeight - inputHeight - typingHeight - statusHeight - 2
	if vpHeight < 5 {
		vpHeight = 5
	}
	contentWidth := m.contentWidth()

	if !m.ready {
		m.viewport = viewport.New(contentWidth-4, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth - 4
		m.viewport.Height = vpHeight
	}
	m.input.Width = contentWidth - 16
}

func (m Model) contentWidth() int {
	w := m.width - 2
	if w < 40 {
		w = 40
	}
	return w
}

// refreshTranscript re-renders the messages and jumps to the newest one
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	for i, msg := range m.session.Transcript() {
		if i > 0 {
			content.WriteString("\n")
		}
		label := msg.Role.Label()

		switch msg.Role {
		case models.RoleClient:
			content.WriteString(clientLabelStyle.Render(label))
			content.WriteString("\n")
			content.WriteString(clientBubbleStyle.Width(bubbleWidth).Render(msg.Text))
		default:
			text := render.Reply(msg.Text, m.markdown, m.renderOpts.WithWidth(bubbleWidth-4))
			content.WriteString(consultantLabelStyle.Render(label))
			content.WriteString("\n")
			content.WriteString(consultantBubbleStyle.Width(bubbleWidth).Render(text))
		}
		content.WriteString("\n")
	}

	return content.String()
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}
	if m.alert != nil {
		return m.renderAlert()
	}

	contentWidth := m.contentWidth()
	var sections []string

	// Header
	title := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("✦ "+models.AppTitle),
		tagStyle.Render(models.AppTag),
	)
	header := headerStyle.Width(contentWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, subtitleStyle.Render(models.AppSubtitle)),
	)
	sections = append(sections, header)

	// Messages
	var body string
	if m.suggestionsVisible() {
		body = m.renderWelcome()
	} else {
		body = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(body))

	// Typing indicator
	if m.session.AwaitingReply() {
		sections = append(sections, " "+m.spinner.View()+loadingStyle.Render(models.TypingIndicator))
	} else {
		sections = append(sections, "")
	}

	sections = append(sections, m.renderInput(contentWidth))
	sections = append(sections, m.renderStatusBar(contentWidth))

	footer := footerStyle.Width(contentWidth).Align(lipgloss.Center).Render(models.AppFooter)
	sections = append(sections, footer)

	if m.notice != "" {
		sections = append(sections, noticeStyle.Render("  "+m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderWelcome renders the welcome panel with the numbered suggestions
func (m Model) renderWelcome() string {
	width := m.viewport.Width

	var items []string
	for i, s := range models.Suggestions() {
		style := suggestionStyle
		if i == m.suggestionCursor {
			style = suggestionSelectedStyle
		}
		items = append(items, style.Render(fmt.Sprintf("%d. %s", i+1, s)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeTitleStyle.Render(models.WelcomeTitle),
		"",
		welcomeTextStyle.Width(width-8).Align(lipgloss.Center).Render(models.WelcomeDescription),
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
	)

	return lipgloss.Place(width, m.viewport.Height, lipgloss.Center, lipgloss.Center, content)
}

// renderInput renders the input line and the send control
func (m Model) renderInput(width int) string {
	send := sendDisabledStyle.Render(sendDisabledLabel)
	if m.session.CanSubmit() {
		send = sendStyle.Render(sendLabel)
	}

	style := inputPanelStyle
	if m.session.AwaitingReply() {
		style = inputPanelDisabledStyle
	}

	inner := width - 4
	field := lipgloss.NewStyle().Width(inner - lipgloss.Width(send) - 1).Render(m.input.View())
	return style.Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Center, field, " ", send))
}

// renderStatusBar renders the key hints
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
	}
	if m.suggestionsVisible() {
		shortcuts = append(shortcuts, struct {
			key  string
			desc string
		}{"Tab", "Suggestion"})
	}
	shortcuts = append(shortcuts, []struct {
		key  string
		desc string
	}{
		{"Ctrl+Y", "Copy reply"},
		{"PgUp/PgDn", "Scroll"},
		{"Esc", "Quit"},
	}...)

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// renderAlert renders the blocking connection error box
func (m Model) renderAlert() string {
	var sb strings.Builder
	sb.WriteString(alertTitleStyle.Render("Connection Error: " + m.alert.Error()))

	if hint := errorHint(m.alert); hint != "" {
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render(hint))
	}
	if status := apierrors.GetHTTPStatus(m.alert); status > 0 {
		sb.WriteString("\n")
		sb.WriteString(subtitleStyle.Render(fmt.Sprintf("HTTP Status: %d", status)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(statusKeyStyle.Render("Enter") + statusDescStyle.Render(" OK"))

	boxWidth := m.contentWidth() - 10
	if boxWidth > 70 {
		boxWidth = 70
	}
	box := alertStyle.Width(boxWidth).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// RunChat starts the chat TUI
func RunChat(client api.ReplyClientInterface, opts ...ModelOption) error {
	m := NewChatModel(client, opts...)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.session.Close()
	}
	return err
}
