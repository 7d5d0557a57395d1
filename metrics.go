package cosmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; see
// metrics/prometheus for a Prometheus-backed implementation.
type MetricsCollector interface {
	// RecordRun is called after each clustering run.
	// status is zero when err is non-nil.
	RecordRun(status Status, iterations int, duration time.Duration, err error)

	// RecordIteration is called after each assignment+update round.
	// moved is the number of points that changed cluster, empty the number
	// of clusters left without members.
	RecordIteration(moved, empty int, duration time.Duration)

	// RecordModelIO is called after each model save ("save") or load ("load").
	RecordModelIO(op string, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRun(Status, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordIteration(int, int, time.Duration)     {}
func (NoopMetricsCollector) RecordModelIO(string, time.Duration, error)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RunCount       atomic.Int64
	RunErrors      atomic.Int64
	RunConverged   atomic.Int64
	RunExhausted   atomic.Int64
	RunTotalNanos  atomic.Int64
	IterationCount atomic.Int64
	PointsMoved    atomic.Int64
	EmptyClusters  atomic.Int64
	ModelSaveCount atomic.Int64
	ModelLoadCount atomic.Int64
	ModelIOErrors  atomic.Int64
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(status Status, _ int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
		return
	}
	switch status {
	case StatusConverged:
		b.RunConverged.Add(1)
	case StatusExhausted:
		b.RunExhausted.Add(1)
	}
}

// RecordIteration implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIteration(moved, empty int, _ time.Duration) {
	b.IterationCount.Add(1)
	b.PointsMoved.Add(int64(moved))
	b.EmptyClusters.Add(int64(empty))
}

// RecordModelIO implements MetricsCollector.
func (b *BasicMetricsCollector) RecordModelIO(op string, _ time.Duration, err error) {
	switch op {
	case "save":
		b.ModelSaveCount.Add(1)
	case "load":
		b.ModelLoadCount.Add(1)
	}
	if err != nil {
		b.ModelIOErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunConverged:   b.RunConverged.Load(),
		RunExhausted:   b.RunExhausted.Load(),
		RunAvgNanos:    b.getAvgRunNanos(),
		IterationCount: b.IterationCount.Load(),
		PointsMoved:    b.PointsMoved.Load(),
		EmptyClusters:  b.EmptyClusters.Load(),
		ModelSaveCount: b.ModelSaveCount.Load(),
		ModelLoadCount: b.ModelLoadCount.Load(),
		ModelIOErrors:  b.ModelIOErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RunCount       int64
	RunErrors      int64
	RunConverged   int64
	RunExhausted   int64
	RunAvgNanos    int64
	IterationCount int64
	PointsMoved    int64
	EmptyClusters  int64
	ModelSaveCount int64
	ModelLoadCount int64
	ModelIOErrors  int64
}
