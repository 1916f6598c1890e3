package vecmem

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    addCounter     prometheus.Counter
//	    queryHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAdd(count int, duration time.Duration, err error) {
//	    p.addCounter.Add(float64(count))
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAdd is called after each add batch.
	// count is the number of records attempted, err is nil if successful.
	RecordAdd(count int, duration time.Duration, err error)

	// RecordUpsert is called after each upsert batch.
	RecordUpsert(count int, duration time.Duration, err error)

	// RecordDelete is called after each delete batch.
	// removed is the number of records actually removed.
	RecordDelete(removed int, duration time.Duration)

	// RecordGet is called after each point-lookup batch.
	// hits is the number of ids found.
	RecordGet(hits int, duration time.Duration)

	// RecordQuery is called after each similarity query.
	// queries is the number of query vectors, k the requested neighbor count.
	RecordQuery(queries, k int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int, time.Duration, error)        {}
func (NoopMetricsCollector) RecordUpsert(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordDelete(int, time.Duration)            {}
func (NoopMetricsCollector) RecordGet(int, time.Duration)               {}
func (NoopMetricsCollector) RecordQuery(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount        atomic.Int64
	AddRecords      atomic.Int64
	AddErrors       atomic.Int64
	UpsertCount     atomic.Int64
	UpsertRecords   atomic.Int64
	UpsertErrors    atomic.Int64
	DeleteCount     atomic.Int64
	DeleteRemoved   atomic.Int64
	GetCount        atomic.Int64
	GetHits         atomic.Int64
	QueryCount      atomic.Int64
	QueryVectors    atomic.Int64
	QueryErrors     atomic.Int64
	QueryTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(count int, duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddRecords.Add(int64(count))
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordUpsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpsert(count int, duration time.Duration, err error) {
	b.UpsertCount.Add(1)
	b.UpsertRecords.Add(int64(count))
	if err != nil {
		b.UpsertErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(removed int, duration time.Duration) {
	b.DeleteCount.Add(1)
	b.DeleteRemoved.Add(int64(removed))
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(hits int, duration time.Duration) {
	b.GetCount.Add(1)
	b.GetHits.Add(int64(hits))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(queries, k int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryVectors.Add(int64(queries))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:      b.AddCount.Load(),
		AddRecords:    b.AddRecords.Load(),
		AddErrors:     b.AddErrors.Load(),
		UpsertCount:   b.UpsertCount.Load(),
		UpsertRecords: b.UpsertRecords.Load(),
		UpsertErrors:  b.UpsertErrors.Load(),
		DeleteCount:   b.DeleteCount.Load(),
		DeleteRemoved: b.DeleteRemoved.Load(),
		GetCount:      b.GetCount.Load(),
		GetHits:       b.GetHits.Load(),
		QueryCount:    b.QueryCount.Load(),
		QueryVectors:  b.QueryVectors.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryAvgNanos: b.getAvgQueryNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgQueryNanos() int64 {
	count := b.QueryCount.Load()
	if count == 0 {
		return 0
	}
	return b.QueryTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount      int64
	AddRecords    int64
	AddErrors     int64
	UpsertCount   int64
	UpsertRecords int64
	UpsertErrors  int64
	DeleteCount   int64
	DeleteRemoved int64
	GetCount      int64
	GetHits       int64
	QueryCount    int64
	QueryVectors  int64
	QueryErrors   int64
	QueryAvgNanos int64
}
