package graphgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordEntityClose is called after each entity builder is closed.
	RecordEntityClose(duration time.Duration, err error)

	// RecordRelationClose is called after each relation builder is closed.
	RecordRelationClose(duration time.Duration, err error)

	// RecordSystemRun is called after each system execution.
	RecordSystemRun(name string, duration time.Duration, err error)

	// RecordFetch is called after a fetch is collected through the World.
	RecordFetch(records int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEntityClose(time.Duration, error)       {}
func (NoopMetricsCollector) RecordRelationClose(time.Duration, error)     {}
func (NoopMetricsCollector) RecordSystemRun(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordFetch(int, time.Duration)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EntityCloseCount    atomic.Int64
	EntityCloseErrors   atomic.Int64
	RelationCloseCount  atomic.Int64
	RelationCloseErrors atomic.Int64
	SystemRunCount      atomic.Int64
	SystemRunErrors     atomic.Int64
	SystemTotalNanos    atomic.Int64
	FetchCount          atomic.Int64
	FetchRecords        atomic.Int64
	FetchTotalNanos     atomic.Int64
}

// RecordEntityClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEntityClose(duration time.Duration, err error) {
	b.EntityCloseCount.Add(1)
	if err != nil {
		b.EntityCloseErrors.Add(1)
	}
}

// RecordRelationClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelationClose(duration time.Duration, err error) {
	b.RelationCloseCount.Add(1)
	if err != nil {
		b.RelationCloseErrors.Add(1)
	}
}

// RecordSystemRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSystemRun(name string, duration time.Duration, err error) {
	b.SystemRunCount.Add(1)
	b.SystemTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SystemRunErrors.Add(1)
	}
}

// RecordFetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFetch(records int, duration time.Duration) {
	b.FetchCount.Add(1)
	b.FetchRecords.Add(int64(records))
	b.FetchTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EntityCloseCount:    b.EntityCloseCount.Load(),
		EntityCloseErrors:   b.EntityCloseErrors.Load(),
		RelationCloseCount:  b.RelationCloseCount.Load(),
		RelationCloseErrors: b.RelationCloseErrors.Load(),
		SystemRunCount:      b.SystemRunCount.Load(),
		SystemRunErrors:     b.SystemRunErrors.Load(),
		SystemAvgNanos:      avg(b.SystemTotalNanos.Load(), b.SystemRunCount.Load()),
		FetchCount:          b.FetchCount.Load(),
		FetchRecords:        b.FetchRecords.Load(),
		FetchAvgNanos:       avg(b.FetchTotalNanos.Load(), b.FetchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EntityCloseCount    int64
	EntityCloseErrors   int64
	RelationCloseCount  int64
	RelationCloseErrors int64
	SystemRunCount      int64
	SystemRunErrors     int64
	SystemAvgNanos      int64
	FetchCount          int64
	FetchRecords        int64
	FetchAvgNanos       int64
}
