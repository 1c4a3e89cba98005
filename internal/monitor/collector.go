// Package monitor times console operations and summarises them on demand.
package monitor

import (
	"time"
)

type operationStats struct {
	timer   *Timer
	errors  *Counter
	success *Counter
}

// Collector records the duration and outcome of every tracked operation. It
// is safe for concurrent use. A nil *Collector records nothing.
type Collector struct {
	started time.Time
	stats   map[OperationType]*operationStats
}

// New creates a collector with a timer for every known operation
func New() *Collector {
	c := &Collector{
		started: time.Now(),
		stats:   make(map[OperationType]*operationStats, len(Operations)),
	}
	for _, op := range Operations {
		c.stats[op] = &operationStats{
			timer:   NewTimer(string(op)),
			errors:  NewCounter(string(op) + ".errors"),
			success: NewCounter(string(op) + ".success"),
		}
	}
	return c
}

// Record adds one measurement of operation
func (c *Collector) Record(operation OperationType, duration time.Duration, err error) {
	if c == nil {
		return
	}
	stats, ok := c.stats[operation]
	if !ok {
		return
	}

	stats.timer.Record(duration)
	if err != nil {
		stats.errors.Inc()
	} else {
		stats.success.Inc()
	}
}

// TrackOperationWithError times fn and records its outcome
func (c *Collector) TrackOperationWithError(operation OperationType, fn func() error) error {
	start := time.Now()
	err := fn()
	c.Record(operation, time.Since(start), err)
	return err
}

// Snapshot returns the current metrics
func (c *Collector) Snapshot() Snapshot {
	now := time.Now()
	snapshot := Snapshot{
		Timestamp: now,
		Memory:    collectMemory(),
	}
	if c == nil {
		return snapshot
	}

	snapshot.Uptime = now.Sub(c.started)
	snapshot.Operations = make([]OperationMetrics, 0, len(Operations))
	for _, op := range Operations {
		stats := c.stats[op]
		snapshot.Operations = append(snapshot.Operations, OperationMetrics{
			Operation:    op,
			Count:        stats.timer.Count(),
			TotalTime:    stats.timer.TotalTime().Nanoseconds(),
			MinTime:      stats.timer.MinTime().Nanoseconds(),
			MaxTime:      stats.timer.MaxTime().Nanoseconds(),
			LastTime:     stats.timer.LastTime().Nanoseconds(),
			ErrorCount:   stats.errors.Get(),
			SuccessCount: stats.success.Get(),
		})
	}
	return snapshot
}
