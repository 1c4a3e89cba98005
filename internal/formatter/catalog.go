package formatter

import (
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// FormatCatalog renders the operational commands as a tree, followed by the
// built-in commands the interpreter always understands
func FormatCatalog(catalog terminal.Catalog, o Options) string {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji

	var b strings.Builder

	symbol := termfmt.GetEmoji("help", opts)
	b.WriteString(strings.TrimSpace(symbol+" Operational Commands") + "\n")

	items := make([]termfmt.TreeItem, 0, len(catalog))
	for i, item := range catalog {
		children := []termfmt.TreeItem{
			{Label: "Command", Value: item.Command},
			{Label: "Description", Value: item.Description, Last: !item.HasView()},
		}
		if item.HasView() {
			children = append(children, termfmt.TreeItem{Label: "View", Value: string(item.View), Last: true})
		}
		items = append(items, termfmt.TreeItem{
			Label:    item.Label,
			Children: children,
			Last:     i == len(catalog)-1,
		})
	}
	if len(items) > 0 {
		b.WriteString(termfmt.TreeViewWithOptions(items, opts) + "\n")
	}

	b.WriteString("\n")
	symbol = termfmt.GetEmoji("target", opts)
	b.WriteString(strings.TrimSpace(symbol+" Built-in") + "\n")
	builtins := []termfmt.TreeItem{
		{Label: "help", Value: "List operational commands"},
		{Label: "clear", Value: "Empty the log"},
		{Label: "dashboard", Value: "Return to main view"},
		{Label: "query [prompt]", Value: "Consult Onyx Intelligence"},
		{Label: "contact", Value: "Open the secure contact channel", Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(builtins, opts) + "\n")

	return b.String()
}
