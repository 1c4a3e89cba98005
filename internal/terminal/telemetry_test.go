package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTelemetry_Tick(t *testing.T) {
	values := []float64{0.5, 0.9, 0.1}
	var n int
	tel := NewTelemetry(func() float64 {
		v := values[n%len(values)]
		n++
		return v
	})

	assert.Equal(t, "00:00:00", tel.Uptime())
	assert.Equal(t, "14.2GB / 32GB", tel.Memory())

	tel.Tick()
	assert.Equal(t, "00:00:01", tel.Uptime())
	assert.Equal(t, "14.2GB / 32GB", tel.Memory())

	// drift below half a tenth is rounded away
	tel.Tick()
	tel.Tick()
	assert.Equal(t, "00:00:03", tel.Uptime())
	assert.Equal(t, "14.2GB / 32GB", tel.Memory())
}

func TestTelemetry_DefaultRandomStaysNear(t *testing.T) {
	tel := NewTelemetry(nil)
	for i := 0; i < 100; i++ {
		tel.Tick()
	}
	assert.Equal(t, "00:01:40", tel.Uptime())
	assert.NotEmpty(t, tel.Memory())
}

func TestFormatUptime(t *testing.T) {
	tests := map[int]string{
		0:      "00:00:00",
		59:     "00:00:59",
		61:     "00:01:01",
		3600:   "01:00:00",
		86399:  "23:59:59",
		360000: "100:00:00",
	}
	for seconds, want := range tests {
		assert.Equal(t, want, FormatUptime(seconds))
	}
}
