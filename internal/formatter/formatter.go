// Package formatter renders console transcripts and the command catalogue
// for headless output.
package formatter

import (
	"fmt"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// Transcript is a snapshot of a console session
type Transcript struct {
	View    terminal.View
	Status  terminal.Status
	Entries []terminal.Entry
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(t *Transcript) ([]byte, error)
}

// Options controls decoration of text output
type Options struct {
	Color bool
	Emoji bool
}

// New returns the formatter registered for format
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case "", "text":
		return NewText(opts), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Snapshot captures the current state of a session
func Snapshot(s *terminal.Session) *Transcript {
	return &Transcript{
		View:    s.View(),
		Status:  s.Status(),
		Entries: s.Entries(),
	}
}

// countByCategory tallies entries per category
func countByCategory(entries []terminal.Entry) map[terminal.Category]int {
	counts := make(map[terminal.Category]int, 4)
	for _, e := range entries {
		counts[e.Category]++
	}
	return counts
}
