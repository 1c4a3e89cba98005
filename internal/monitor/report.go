package monitor

import (
	"fmt"
	"strings"
	"time"
)

// FormatText renders snapshot as a plain text report
func FormatText(snapshot Snapshot) string {
	var sb strings.Builder

	sb.WriteString("Onyx Performance Report\n")
	sb.WriteString("=======================\n\n")

	sb.WriteString(fmt.Sprintf("Generated: %s\n", snapshot.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Uptime: %s\n\n", snapshot.Uptime.Round(time.Millisecond)))

	sb.WriteString("Operations:\n")
	for _, op := range snapshot.Operations {
		if op.Count == 0 {
			sb.WriteString(fmt.Sprintf("  %-10s none\n", op.Operation))
			continue
		}
		sb.WriteString(fmt.Sprintf("  %-10s count=%d ok=%d failed=%d avg=%s min=%s max=%s\n",
			op.Operation, op.Count, op.SuccessCount, op.ErrorCount,
			op.AvgTime().Round(time.Millisecond),
			time.Duration(op.MinTime).Round(time.Millisecond),
			time.Duration(op.MaxTime).Round(time.Millisecond)))
	}

	sb.WriteString("\nMemory:\n")
	sb.WriteString(fmt.Sprintf("  Heap: %d bytes\n", snapshot.Memory.HeapAlloc))
	sb.WriteString(fmt.Sprintf("  Goroutines: %d\n", snapshot.Memory.Goroutines))

	return sb.String()
}
