package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

func sampleTranscript() *Transcript {
	return &Transcript{
		View:   terminal.ViewSecurity,
		Status: terminal.StatusReady,
		Entries: []terminal.Entry{
			{Category: terminal.CategoryCommand, Content: "run pentest_audit", Timestamp: "09:04:05"},
			{Category: terminal.CategorySystem, Content: "Executing protocol for Security...", Timestamp: "09:04:05"},
			{Category: terminal.CategoryAI, Content: "PERIMETER MAPPED.\nZERO GAPS.", Timestamp: "09:04:06"},
			{Category: terminal.CategoryError, Content: "CMD_ERR: 'x' is not recognized. Check 'help'.", Timestamp: "09:04:07"},
		},
	}
}

func TestTextFormatter_FormatEntry(t *testing.T) {
	f := NewText(Options{})

	tests := []struct {
		entry terminal.Entry
		want  string
	}{
		{
			entry: terminal.Entry{Category: terminal.CategoryCommand, Content: "help", Timestamp: "09:04:05"},
			want:  "09:04:05 > help",
		},
		{
			entry: terminal.Entry{Category: terminal.CategorySystem, Content: "Clearing buffer", Timestamp: "10:00:00"},
			want:  "10:00:00 [SYSTEM] Clearing buffer",
		},
		{
			entry: terminal.Entry{Category: terminal.CategoryAI, Content: "OK", Timestamp: "23:59:59"},
			want:  "23:59:59 [INTELLIGENCE] OK",
		},
		{
			entry: terminal.Entry{Category: terminal.CategoryError, Content: "boom", Timestamp: "00:00:01"},
			want:  "00:00:01 [FATAL] boom",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.entry.Category), func(t *testing.T) {
			if got := f.FormatEntry(tt.entry); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTextFormatter_MultilineIndent(t *testing.T) {
	f := NewText(Options{})

	got := f.FormatEntry(terminal.Entry{
		Category:  terminal.CategoryAI,
		Content:   "line one\nline two\n",
		Timestamp: "09:04:05",
	})

	want := "09:04:05 [INTELLIGENCE] line one\n" +
		strings.Repeat(" ", len("09:04:05 [INTELLIGENCE] ")) + "line two"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTextFormatter_Format(t *testing.T) {
	out, err := NewText(Options{}).Format(sampleTranscript())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output := string(out)

	for _, want := range []string{
		"ONYX Session Transcript",
		"09:04:05 > run pentest_audit",
		"[SYSTEM] Executing protocol for Security...",
		"[FATAL] CMD_ERR",
		"Session",
		"security",
		"READY",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, output)
		}
	}

	// Entries appear in log order
	if strings.Index(output, "run pentest_audit") > strings.Index(output, "PERIMETER MAPPED") {
		t.Errorf("Entries should keep insertion order")
	}
}

func TestTextFormatter_EmptyTranscript(t *testing.T) {
	out, err := NewText(Options{}).Format(&Transcript{View: terminal.ViewDashboard, Status: terminal.StatusReady})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if strings.Contains(string(out), "[SYSTEM]") {
		t.Errorf("Expected no entries in output:\n%s", out)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := NewJSON().Format(sampleTranscript())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded TranscriptOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded.View != terminal.ViewSecurity {
		t.Errorf("Expected view security, got %s", decoded.View)
	}
	if len(decoded.Entries) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(decoded.Entries))
	}
	if decoded.Entries[2].Category != terminal.CategoryAI {
		t.Errorf("Expected ai entry, got %s", decoded.Entries[2].Category)
	}
	if decoded.Summary.TotalEntries != 4 || decoded.Summary.ByCategory[terminal.CategoryError] != 1 {
		t.Errorf("Unexpected summary: %+v", decoded.Summary)
	}
	if !strings.Contains(string(out), `"type": "command"`) {
		t.Errorf("Expected entries to carry their type:\n%s", out)
	}
}

func TestJSONFormatter_EmptyEntriesIsArray(t *testing.T) {
	out, err := NewJSON().Format(&Transcript{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), `"entries": []`) {
		t.Errorf("Expected empty entries array:\n%s", out)
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "text", "json"} {
		if _, err := New(format, Options{}); err != nil {
			t.Errorf("format %q: unexpected error %v", format, err)
		}
	}
	if _, err := New("markdown", Options{}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestSnapshot(t *testing.T) {
	session := terminal.NewSession(terminal.NewStore())
	session.Append("hello", terminal.CategorySystem)

	snap := Snapshot(session)

	if len(snap.Entries) != 1 || snap.Entries[0].Content != "hello" {
		t.Errorf("Unexpected entries: %+v", snap.Entries)
	}
	if snap.View != session.View() || snap.Status != session.Status() {
		t.Errorf("Snapshot should mirror session state")
	}
}

func TestFormatCatalog(t *testing.T) {
	output := FormatCatalog(terminal.DefaultCatalog(), Options{})

	for _, want := range []string{
		"Operational Commands",
		"Security",
		"run pentest_audit",
		"Consult",
		"query intelligence",
		"it-work",
		"Built-in",
		"query [prompt]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected catalogue to contain %q:\n%s", want, output)
		}
	}
}
