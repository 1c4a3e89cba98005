package monitor

import (
	"runtime"
	"sync/atomic"
	"time"
)

// OperationType names a kind of console work being timed
type OperationType string

const (
	OperationQuery    OperationType = "query"
	OperationDeepDive OperationType = "deep_dive"
	OperationCommand  OperationType = "command"
)

// Operations lists every tracked operation in report order
var Operations = []OperationType{OperationCommand, OperationQuery, OperationDeepDive}

// MemoryMetrics holds memory-related metrics of the running process
type MemoryMetrics struct {
	HeapAlloc  uint64 `json:"heap_alloc"` // bytes allocated in heap
	Sys        uint64 `json:"sys"`        // total bytes from system
	NumGC      uint32 `json:"num_gc"`     // number of garbage collections
	Goroutines int    `json:"goroutines"`
}

// OperationMetrics holds metrics for one operation type
type OperationMetrics struct {
	Operation    OperationType `json:"operation"`
	Count        int64         `json:"count"`
	TotalTime    int64         `json:"total_time_ns"`
	MinTime      int64         `json:"min_time_ns"`
	MaxTime      int64         `json:"max_time_ns"`
	LastTime     int64         `json:"last_time_ns"`
	ErrorCount   int64         `json:"error_count"`
	SuccessCount int64         `json:"success_count"`
}

// AvgTime returns the mean duration, zero before the first measurement
func (m OperationMetrics) AvgTime() time.Duration {
	if m.Count == 0 {
		return 0
	}
	return time.Duration(m.TotalTime / m.Count)
}

// Snapshot is a point-in-time view of every metric
type Snapshot struct {
	Timestamp  time.Time          `json:"timestamp"`
	Uptime     time.Duration      `json:"uptime_ns"`
	Memory     MemoryMetrics      `json:"memory"`
	Operations []OperationMetrics `json:"operations"`
}

// Counter is a thread-safe counter metric
type Counter struct {
	value int64
	name  string
}

// NewCounter creates a new counter metric
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1
func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

// Get returns the current counter value
func (c *Counter) Get() int64 {
	return atomic.LoadInt64(&c.value)
}

// Name returns the counter name
func (c *Counter) Name() string {
	return c.name
}

const noMin = int64(^uint64(0) >> 1)

// Timer is a thread-safe timer for measuring operation durations
type Timer struct {
	count     int64
	totalTime int64
	minTime   int64
	maxTime   int64
	lastTime  int64
	name      string
}

// NewTimer creates a new timer metric
func NewTimer(name string) *Timer {
	return &Timer{
		name:    name,
		minTime: noMin,
	}
}

// Record records a duration measurement
func (t *Timer) Record(duration time.Duration) {
	nanos := duration.Nanoseconds()

	atomic.AddInt64(&t.count, 1)
	atomic.AddInt64(&t.totalTime, nanos)
	atomic.StoreInt64(&t.lastTime, nanos)

	for {
		current := atomic.LoadInt64(&t.minTime)
		if nanos >= current || atomic.CompareAndSwapInt64(&t.minTime, current, nanos) {
			break
		}
	}

	for {
		current := atomic.LoadInt64(&t.maxTime)
		if nanos <= current || atomic.CompareAndSwapInt64(&t.maxTime, current, nanos) {
			break
		}
	}
}

// Count returns the number of recorded measurements
func (t *Timer) Count() int64 {
	return atomic.LoadInt64(&t.count)
}

// TotalTime returns the total time of all measurements
func (t *Timer) TotalTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.totalTime))
}

// MinTime returns the minimum recorded time
func (t *Timer) MinTime() time.Duration {
	minTime := atomic.LoadInt64(&t.minTime)
	if minTime == noMin {
		return 0
	}
	return time.Duration(minTime)
}

// MaxTime returns the maximum recorded time
func (t *Timer) MaxTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.maxTime))
}

// LastTime returns the most recent measurement
func (t *Timer) LastTime() time.Duration {
	return time.Duration(atomic.LoadInt64(&t.lastTime))
}

// Name returns the timer name
func (t *Timer) Name() string {
	return t.name
}

func collectMemory() MemoryMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MemoryMetrics{
		HeapAlloc:  m.HeapAlloc,
		Sys:        m.Sys,
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}
}
