package monitor

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCounter(t *testing.T) {
	counter := NewCounter("test_counter")

	if counter.Get() != 0 {
		t.Errorf("Expected initial value 0, got %d", counter.Get())
	}

	counter.Inc()
	counter.Inc()
	if counter.Get() != 2 {
		t.Errorf("Expected value 2, got %d", counter.Get())
	}

	if counter.Name() != "test_counter" {
		t.Errorf("Expected name 'test_counter', got %s", counter.Name())
	}
}

func TestTimer(t *testing.T) {
	timer := NewTimer("test_timer")

	if timer.MinTime() != 0 {
		t.Errorf("Expected min 0 before any record, got %v", timer.MinTime())
	}

	timer.Record(30 * time.Millisecond)
	timer.Record(10 * time.Millisecond)
	timer.Record(20 * time.Millisecond)

	if timer.Count() != 3 {
		t.Errorf("Expected count 3, got %d", timer.Count())
	}
	if timer.TotalTime() != 60*time.Millisecond {
		t.Errorf("Expected total 60ms, got %v", timer.TotalTime())
	}
	if timer.MinTime() != 10*time.Millisecond {
		t.Errorf("Expected min 10ms, got %v", timer.MinTime())
	}
	if timer.MaxTime() != 30*time.Millisecond {
		t.Errorf("Expected max 30ms, got %v", timer.MaxTime())
	}
	if timer.LastTime() != 20*time.Millisecond {
		t.Errorf("Expected last 20ms, got %v", timer.LastTime())
	}
}

func TestTimerConcurrentRecords(t *testing.T) {
	timer := NewTimer("concurrent")

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(d time.Duration) {
			defer wg.Done()
			timer.Record(d)
		}(time.Duration(i) * time.Millisecond)
	}
	wg.Wait()

	if timer.Count() != 50 {
		t.Errorf("Expected 50 records, got %d", timer.Count())
	}
	if timer.MinTime() != time.Millisecond || timer.MaxTime() != 50*time.Millisecond {
		t.Errorf("Unexpected bounds: min %v max %v", timer.MinTime(), timer.MaxTime())
	}
}

func TestCollectorRecord(t *testing.T) {
	c := New()

	c.Record(OperationQuery, 100*time.Millisecond, nil)
	c.Record(OperationQuery, 300*time.Millisecond, errors.New("timeout"))
	c.Record(OperationCommand, time.Millisecond, nil)
	c.Record(OperationType("unknown"), time.Second, nil)

	snapshot := c.Snapshot()
	if len(snapshot.Operations) != len(Operations) {
		t.Fatalf("Expected %d operations, got %d", len(Operations), len(snapshot.Operations))
	}

	byOp := make(map[OperationType]OperationMetrics)
	for _, op := range snapshot.Operations {
		byOp[op.Operation] = op
	}

	query := byOp[OperationQuery]
	if query.Count != 2 || query.SuccessCount != 1 || query.ErrorCount != 1 {
		t.Errorf("Unexpected query metrics: %+v", query)
	}
	if query.AvgTime() != 200*time.Millisecond {
		t.Errorf("Expected avg 200ms, got %v", query.AvgTime())
	}
	if byOp[OperationCommand].Count != 1 {
		t.Errorf("Expected one command, got %d", byOp[OperationCommand].Count)
	}
	if byOp[OperationDeepDive].Count != 0 || byOp[OperationDeepDive].AvgTime() != 0 {
		t.Errorf("Expected no deep dives, got %+v", byOp[OperationDeepDive])
	}
	if snapshot.Memory.Goroutines == 0 {
		t.Error("Expected goroutine count to be collected")
	}
}

func TestCollectorTrackOperationWithError(t *testing.T) {
	c := New()
	boom := errors.New("boom")

	err := c.TrackOperationWithError(OperationDeepDive, func() error {
		time.Sleep(5 * time.Millisecond)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Expected the operation error back, got %v", err)
	}

	for _, op := range c.Snapshot().Operations {
		if op.Operation != OperationDeepDive {
			continue
		}
		if op.ErrorCount != 1 {
			t.Errorf("Expected one failure, got %d", op.ErrorCount)
		}
		if time.Duration(op.MinTime) < 5*time.Millisecond {
			t.Errorf("Expected at least 5ms, got %v", time.Duration(op.MinTime))
		}
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector

	c.Record(OperationQuery, time.Second, nil)
	if err := c.TrackOperationWithError(OperationQuery, func() error { return nil }); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if ops := c.Snapshot().Operations; len(ops) != 0 {
		t.Errorf("Nil collector should report no operations, got %d", len(ops))
	}
}

func TestFormatText(t *testing.T) {
	c := New()
	c.Record(OperationQuery, 1500*time.Millisecond, nil)

	report := FormatText(c.Snapshot())

	for _, want := range []string{"Onyx Performance Report", "query", "count=1 ok=1 failed=0 avg=1.5s", "deep_dive", "none", "Goroutines:"} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected %q in report:\n%s", want, report)
		}
	}
}
