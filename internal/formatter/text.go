package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/go-termfmt"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// Prefixes are the per-category markers written before entry content
var Prefixes = map[terminal.Category]string{
	terminal.CategoryCommand: "> ",
	terminal.CategorySystem:  "[SYSTEM] ",
	terminal.CategoryAI:      "[INTELLIGENCE] ",
	terminal.CategoryError:   "[FATAL] ",
}

var categoryColors = map[terminal.Category]lipgloss.Color{
	terminal.CategoryCommand: lipgloss.Color("#E5E7EB"),
	terminal.CategorySystem:  lipgloss.Color("#3B82F6"),
	terminal.CategoryAI:      lipgloss.Color("#10B981"),
	terminal.CategoryError:   lipgloss.Color("#EF4444"),
}

// textFormatter formats transcripts as plain terminal text using go-termfmt
type textFormatter struct {
	opts *termfmt.TerminalOptions
}

// TextFormatter is the text formatter; it can also render single entries
type TextFormatter interface {
	Formatter
	FormatEntry(e terminal.Entry) string
}

// NewText creates a text formatter
func NewText(o Options) TextFormatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji
	return &textFormatter{opts: opts}
}

func (f *textFormatter) Format(t *Transcript) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)

	for _, e := range t.Entries {
		b.WriteString(f.FormatEntry(e))
		b.WriteString("\n")
	}
	if len(t.Entries) > 0 {
		b.WriteString("\n")
	}

	f.writeSummary(&b, t)

	return []byte(b.String()), nil
}

// FormatEntry renders one entry as "HH:MM:SS <prefix><content>". Continuation
// lines of multi-line content are indented under the first.
func (f *textFormatter) FormatEntry(e terminal.Entry) string {
	lead := e.Timestamp + " "
	if f.opts.Emoji {
		if symbol := f.categorySymbol(e.Category); symbol != "" {
			lead += symbol + " "
		}
	}
	prefix := Prefixes[e.Category]

	indent := strings.Repeat(" ", lipgloss.Width(lead+prefix))
	lines := strings.Split(strings.TrimRight(e.Content, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		lines[i] = indent + lines[i]
	}
	body := prefix + strings.Join(lines, "\n")

	if f.opts.Color {
		body = lipgloss.NewStyle().Foreground(categoryColors[e.Category]).Render(body)
	}
	return lead + body
}

func (f *textFormatter) categorySymbol(c terminal.Category) string {
	switch c {
	case terminal.CategoryCommand:
		return termfmt.GetEmoji("target", f.opts)
	case terminal.CategorySystem:
		return termfmt.GetEmoji("info", f.opts)
	case terminal.CategoryAI:
		if symbol := termfmt.GetEmoji("ai", f.opts); symbol != "" {
			return symbol
		}
		return "🤖" // Fallback
	case terminal.CategoryError:
		return termfmt.GetEmoji("error", f.opts)
	default:
		return ""
	}
}

// writeHeader writes the transcript banner with box drawing
func (f *textFormatter) writeHeader(b *strings.Builder) {
	header := "ONYX Session Transcript"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSummary writes session statistics as a tree
func (f *textFormatter) writeSummary(b *strings.Builder, t *Transcript) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(strings.TrimSpace(symbol+" Session") + "\n")

	counts := countByCategory(t.Entries)
	items := []termfmt.TreeItem{
		{Label: "View", Value: string(t.View)},
		{Label: "Status", Value: string(t.Status)},
		{Label: "Entries", Value: fmt.Sprintf("%d", len(t.Entries))},
		{Label: "Intelligence", Value: fmt.Sprintf("%d", counts[terminal.CategoryAI])},
		{Label: "Errors", Value: fmt.Sprintf("%d", counts[terminal.CategoryError]), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n")
}
