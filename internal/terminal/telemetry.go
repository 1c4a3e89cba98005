package terminal

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
)

const (
	initialMemoryGB = 14.2
	totalMemoryGB   = 32

	// Location is the fixed coordinate readout of the status bar
	Location = "40.7128° N, 74.0060° W"
)

// Telemetry is the cosmetic uptime and memory readout of the status bar
type Telemetry struct {
	mu      sync.Mutex
	seconds int
	memory  float64
	random  func() float64
}

// NewTelemetry creates a readout at zero uptime. random returns values in
// [0, 1); nil uses math/rand.
func NewTelemetry(random func() float64) *Telemetry {
	if random == nil {
		random = rand.Float64
	}
	return &Telemetry{memory: initialMemoryGB, random: random}
}

// Tick advances the readout by one second
func (t *Telemetry) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seconds++
	delta := (t.random() - 0.5) * 0.1
	t.memory = math.Round((t.memory+delta)*10) / 10
}

// Uptime formats elapsed ticks as HH:MM:SS
func (t *Telemetry) Uptime() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return FormatUptime(t.seconds)
}

// Memory formats the memory readout
func (t *Telemetry) Memory() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fmt.Sprintf("%.1fGB / %dGB", t.memory, totalMemoryGB)
}

// FormatUptime renders seconds as zero-padded HH:MM:SS
func FormatUptime(seconds int) string {
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
}
