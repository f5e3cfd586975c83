package meowhash

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Package prom provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordHash is called after hashing size bytes.
	RecordHash(size int, duration time.Duration)

	// RecordPut is called after each chunk write. deduplicated is true when
	// the chunk was already present and nothing was written.
	RecordPut(size int, deduplicated bool, duration time.Duration, err error)

	// RecordGet is called after each chunk read.
	RecordGet(size int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordHash(int, time.Duration) {}
func (NoopMetricsCollector) RecordPut(int, bool, time.Duration, error) {}
func (NoopMetricsCollector) RecordGet(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	HashCount       atomic.Int64
	HashBytes       atomic.Int64
	HashTotalNanos  atomic.Int64
	PutCount        atomic.Int64
	PutDeduplicated atomic.Int64
	PutBytes        atomic.Int64
	PutErrors       atomic.Int64
	GetCount        atomic.Int64
	GetBytes        atomic.Int64
	GetErrors       atomic.Int64
}

// RecordHash implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHash(size int, duration time.Duration) {
	b.HashCount.Add(1)
	b.HashBytes.Add(int64(size))
	b.HashTotalNanos.Add(duration.Nanoseconds())
}

// RecordPut implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPut(size int, deduplicated bool, _ time.Duration, err error) {
	b.PutCount.Add(1)
	if err != nil {
		b.PutErrors.Add(1)
		return
	}
	if deduplicated {
		b.PutDeduplicated.Add(1)
		return
	}
	b.PutBytes.Add(int64(size))
}

// RecordGet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGet(size int, _ time.Duration, err error) {
	b.GetCount.Add(1)
	if err != nil {
		b.GetErrors.Add(1)
		return
	}
	b.GetBytes.Add(int64(size))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		HashCount:       b.HashCount.Load(),
		HashBytes:       b.HashBytes.Load(),
		HashThroughput:  b.getHashThroughput(),
		PutCount:        b.PutCount.Load(),
		PutDeduplicated: b.PutDeduplicated.Load(),
		PutBytes:        b.PutBytes.Load(),
		PutErrors:       b.PutErrors.Load(),
		GetCount:        b.GetCount.Load(),
		GetBytes:        b.GetBytes.Load(),
		GetErrors:       b.GetErrors.Load(),
	}
}

// getHashThroughput returns hashed bytes per second.
func (b *BasicMetricsCollector) getHashThroughput() float64 {
	nanos := b.HashTotalNanos.Load()
	if nanos == 0 {
		return 0
	}
	return float64(b.HashBytes.Load()) / time.Duration(nanos).Seconds()
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	HashCount       int64
	HashBytes       int64
	HashThroughput  float64
	PutCount        int64
	PutDeduplicated int64
	PutBytes        int64
	PutErrors       int64
	GetCount        int64
	GetBytes        int64
	GetErrors       int64
}
