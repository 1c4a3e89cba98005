package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// View renders the console
func (m *Model) View() string {
	if !m.ready {
		return "Initializing ONYX..."
	}
	if m.quitting {
		return m.styles.Muted.Render("SESSION TERMINATED.") + "\n"
	}

	main := m.renderTerminal()
	if m.width >= minSplitWidth {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderCopy(m.width-lipgloss.Width(main)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		main,
		m.renderFooter(),
		m.renderStatusBar(),
	)
}

// renderHeader draws the banner and the navigation row
func (m *Model) renderHeader() string {
	var parts []string
	if m.height >= minLogoHeight {
		parts = append(parts,
			m.styles.Logo.Render(Logo),
			m.styles.Tagline.Render(strings.ToUpper(terminal.CorePurpose)),
		)
	} else {
		parts = append(parts, m.styles.Title.Render("ONYX")+"  "+m.styles.Tagline.Render(strings.ToUpper(terminal.CorePurpose)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append(parts, m.renderNav(), "")...)
}

// renderNav lists the catalogue with its function-key shortcuts
func (m *Model) renderNav() string {
	view := m.session.View()

	home := m.styles.NavItem
	if view == terminal.ViewDashboard {
		home = m.styles.NavActive
	}
	items := []string{home.Render("[ESC] HOME")}

	for i, item := range m.catalog {
		style := m.styles.NavItem
		if item.HasView() && item.View == view {
			style = m.styles.NavActive
		}
		label := strings.ToUpper(item.Label)
		if i < 5 {
			label = fmt.Sprintf("[F%d] %s", i+1, label)
		}
		items = append(items, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// renderTerminal draws the log panel with its title and input line
func (m *Model) renderTerminal() string {
	title := m.styles.PanelTitle.Render("● ● ●  " + PanelTitle(m.session.View()))

	var input string
	switch m.session.Status() {
	case terminal.StatusBooting:
		input = ""
	case terminal.StatusProcessing:
		input = m.spinner.View() + " " + m.styles.Muted.Render(Placeholder(terminal.StatusProcessing))
	default:
		input = m.input.View()
	}

	body := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), input)
	return m.styles.Panel.Width(m.viewport.Width + 2).Render(body)
}

// renderCopy draws the content panel for the current view
func (m *Model) renderCopy(width int) string {
	view := m.session.View()
	content := CopyFor(view, m.contact)
	accent := lipgloss.NewStyle().Bold(true)
	if !m.styles.Plain {
		accent = accent.Foreground(m.styles.Accent(view))
	}
	inner := max(10, width-6)

	lines := []string{
		accent.Render(content.Title),
		"",
		m.styles.Body.Width(inner).Render(content.Body),
		"",
	}
	for _, p := range content.Points {
		lines = append(lines,
			accent.Render(p.Title),
			m.styles.Muted.Width(inner).Render(p.Text),
			"",
		)
	}
	if len(content.Contact) > 0 {
		lines = append(lines, accent.Render(content.Contact[0]))
		for _, l := range content.Contact[1:] {
			lines = append(lines, m.styles.Body.Render(l))
		}
		lines = append(lines, "")
	}
	if view != terminal.ViewDashboard {
		lines = append(lines, m.styles.Muted.Render("[ ESC TO DASHBOARD ]"))
	}

	return m.styles.Copy.Width(inner + 4).MaxHeight(max(3, m.mainHeight())).Render(strings.Join(lines, "\n"))
}

// renderFooter draws the tagline row
func (m *Model) renderFooter() string {
	return m.styles.Muted.Render(strings.Join(Footer, "   "))
}

// renderStatusBar draws the system readout
func (m *Model) renderStatusBar() string {
	left := terminal.SystemName + "  " + m.styles.Status.Render("STATUS: "+string(m.session.Status()))
	right := fmt.Sprintf("MEM: %s  UPTIME: %s", m.telemetry.Memory(), m.telemetry.Uptime())
	if m.width >= minSplitWidth {
		right += "  LOC: " + terminal.Location
	}

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return m.styles.StatusBar.Render(left + strings.Repeat(" ", gap) + right)
}
