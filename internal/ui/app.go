package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// Run boots console and drives it full-screen until the user quits. The
// console is closed on return.
func Run(console *terminal.Console, opts Options) error {
	model := NewModel(console, opts)
	defer model.Stop()
	defer console.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	console.Boot()
	_, err := p.Run()
	return err
}
