package formatter

import (
	"encoding/json"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// TranscriptOutput is the JSON document for a transcript
type TranscriptOutput struct {
	View    terminal.View    `json:"view"`
	Status  terminal.Status  `json:"status"`
	Entries []terminal.Entry `json:"entries"`
	Summary *SummaryOutput   `json:"summary"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	TotalEntries int                       `json:"total_entries"`
	ByCategory   map[terminal.Category]int `json:"by_category"`
}

func (f *jsonFormatter) Format(t *Transcript) ([]byte, error) {
	entries := t.Entries
	if entries == nil {
		entries = []terminal.Entry{}
	}

	output := &TranscriptOutput{
		View:    t.View,
		Status:  t.Status,
		Entries: entries,
		Summary: &SummaryOutput{
			TotalEntries: len(entries),
			ByCategory:   countByCategory(entries),
		},
	}

	return json.MarshalIndent(output, "", "  ")
}
