// Package ui is the full-screen Onyx console built on bubbletea.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/acevedoonyx/onyx/internal/formatter"
	"github.com/acevedoonyx/onyx/internal/terminal"
)

const (
	// minSplitWidth is the narrowest terminal that still shows the copy panel
	minSplitWidth = 100
	// minLogoHeight is the shortest terminal that still shows the banner
	minLogoHeight = 40
)

// shortcuts maps function keys to catalogue positions
var shortcuts = map[tea.KeyType]int{
	tea.KeyF1: 0,
	tea.KeyF2: 1,
	tea.KeyF3: 2,
	tea.KeyF4: 3,
	tea.KeyF5: 4,
}

type tickMsg time.Time

type sessionChangedMsg struct{}

// tick drives the status bar telemetry once per second
func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Options configures a Model
type Options struct {
	Theme     Theme
	Plain     bool
	Telemetry *terminal.Telemetry
}

// Model is the bubbletea model of the console. All domain state lives in the
// console's session; the model only renders it and forwards input.
type Model struct {
	console   *terminal.Console
	session   *terminal.Session
	catalog   terminal.Catalog
	contact   terminal.ContactCard
	telemetry *terminal.Telemetry
	styles    *Styles

	changes chan struct{}
	done    chan struct{}

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates a model bound to console and subscribes to its session
func NewModel(console *terminal.Console, opts Options) *Model {
	if opts.Theme.Name == "" {
		opts.Theme = OnyxTheme
	}
	if opts.Telemetry == nil {
		opts.Telemetry = terminal.NewTelemetry(nil)
	}
	styles := NewStyles(opts.Theme, opts.Plain || IsColorDisabled())

	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = styles.Prompt
	ti.Placeholder = Placeholder(terminal.StatusReady)
	ti.CharLimit = 1024
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Status

	m := &Model{
		console:   console,
		session:   console.Session(),
		catalog:   console.Interpreter().Catalog(),
		contact:   console.Interpreter().Contact(),
		telemetry: opts.Telemetry,
		styles:    styles,
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		input:     ti,
		viewport:  viewport.New(80, 20),
		spinner:   sp,
	}

	m.session.OnChange(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	return m
}

// Init starts the clocks and the session subscription
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		tick(),
		m.waitForChange(),
	)
}

// waitForChange blocks until the session reports a mutation. Bursts of
// changes collapse into one message.
func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return sessionChangedMsg{}
		case <-m.done:
			return nil
		}
	}
}

// Stop releases the pending session subscription
func (m *Model) Stop() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Update handles messages and navigation
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		m.telemetry.Tick()
		return m, tick()
	case sessionChangedMsg:
		m.refresh()
		return m, m.waitForChange()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleWindowResize lays out the panels for the new size
func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	w, h := m.logSize()
	m.viewport.Width = w
	m.viewport.Height = h
	m.input.Width = max(0, w-len(m.input.Prompt)-1)
	m.refresh()
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.session.SetView(terminal.ViewDashboard)
		m.refresh()
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyF1, tea.KeyF2, tea.KeyF3, tea.KeyF4, tea.KeyF5:
		return m.handleShortcut(shortcuts[msg.Type])
	case tea.KeyEnter:
		return m.handleSubmit()
	}

	if !m.console.Ready() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleShortcut submits the command of the i-th catalogue item. Shortcuts go
// through the same gate as typed input.
func (m *Model) handleShortcut(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.catalog) {
		return m, nil
	}
	if err := m.console.Submit(m.catalog[i].Command); err == nil {
		m.refresh()
	}
	return m, nil
}

// handleSubmit sends the input line to the console
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if !m.console.Ready() {
		return m, nil
	}
	line := m.input.Value()
	m.input.Reset()
	if err := m.console.Submit(line); err == nil {
		m.refresh()
	}
	return m, nil
}

// refresh re-renders the log into the viewport and syncs the input line
func (m *Model) refresh() {
	atBottom := m.viewport.AtBottom() || m.viewport.TotalLineCount() == 0
	m.viewport.SetContent(m.renderEntries(m.session.Entries()))
	if atBottom {
		m.viewport.GotoBottom()
	}

	status := m.session.Status()
	m.input.Placeholder = Placeholder(status)
	if status == terminal.StatusProcessing {
		m.input.Blur()
	} else {
		m.input.Focus()
	}
}

func (m *Model) renderEntries(entries []terminal.Entry) string {
	width := max(1, m.viewport.Width)
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style, ok := m.styles.Entry[e.Category]
		if !ok {
			style = m.styles.Body
		}
		line := m.styles.Timestamp.Render(e.Timestamp) + " " +
			style.Render(formatter.Prefixes[e.Category]+e.Content)
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(line))
	}
	return strings.Join(lines, "\n")
}

// logSize is the width and height available to the scrolling log
func (m *Model) logSize() (int, int) {
	panelWidth := m.width
	if m.width >= minSplitWidth {
		panelWidth = m.width / 2
	}
	// border + padding
	w := max(10, panelWidth-4)
	// panel border, title row and input row
	h := max(3, m.mainHeight()-4)
	return w, h
}

// mainHeight is the height left for the panels after header and footer
func (m *Model) mainHeight() int {
	return m.height - lipgloss.Height(m.renderHeader()) - 2
}
