package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/meowhash"
)

// Put and get outcomes used as the "result" label.
const (
	ResultWritten      = "written"
	ResultDeduplicated = "deduplicated"
	ResultOK           = "ok"
	ResultError        = "error"
)

var durationBuckets = prometheus.ExponentialBuckets(0.00001, 4, 10)

// Collector implements meowhash.MetricsCollector on Prometheus counters and
// histograms.
type Collector struct {
	HashBytes    prometheus.Counter
	HashDuration prometheus.Histogram
	Puts         *prometheus.CounterVec
	PutBytes     prometheus.Counter
	PutDuration  prometheus.Histogram
	Gets         *prometheus.CounterVec
	GetBytes     prometheus.Counter
	GetDuration  prometheus.Histogram
}

var _ meowhash.MetricsCollector = (*Collector)(nil)

// NewCollector creates unregistered metrics under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		HashBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hash",
			Name:      "bytes_total",
			Help:      "Bytes hashed.",
		}),
		HashDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "hash",
			Name:      "duration_seconds",
			Help:      "Time spent hashing one buffer.",
			Buckets:   durationBuckets,
		}),
		Puts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "chunk_puts_total",
			Help:      "Chunk writes by result.",
		}, []string{"result"}),
		PutBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "put_bytes_total",
			Help:      "Uncompressed bytes of newly written chunks.",
		}),
		PutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "put_duration_seconds",
			Help:      "Time spent writing one chunk.",
			Buckets:   durationBuckets,
		}),
		Gets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "chunk_gets_total",
			Help:      "Chunk reads by result.",
		}, []string{"result"}),
		GetBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "get_bytes_total",
			Help:      "Uncompressed bytes read.",
		}),
		GetDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "get_duration_seconds",
			Help:      "Time spent reading one chunk.",
			Buckets:   durationBuckets,
		}),
	}
}

// Collectors returns every metric of c.
func (c *Collector) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.HashBytes, c.HashDuration,
		c.Puts, c.PutBytes, c.PutDuration,
		c.Gets, c.GetBytes, c.GetDuration,
	}
}

// Register registers all metrics with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, m := range c.Collectors() {
		if err := reg.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// RecordHash implements meowhash.MetricsCollector.
func (c *Collector) RecordHash(size int, duration time.Duration) {
	c.HashBytes.Add(float64(size))
	c.HashDuration.Observe(duration.Seconds())
}

// RecordPut implements meowhash.MetricsCollector.
func (c *Collector) RecordPut(size int, deduplicated bool, duration time.Duration, err error) {
	c.PutDuration.Observe(duration.Seconds())
	switch {
	case err != nil:
		c.Puts.WithLabelValues(ResultError).Inc()
	case deduplicated:
		c.Puts.WithLabelValues(ResultDeduplicated).Inc()
	default:
		c.Puts.WithLabelValues(ResultWritten).Inc()
		c.PutBytes.Add(float64(size))
	}
}

// RecordGet implements meowhash.MetricsCollector.
func (c *Collector) RecordGet(size int, duration time.Duration, err error) {
	c.GetDuration.Observe(duration.Seconds())
	if err != nil {
		c.Gets.WithLabelValues(ResultError).Inc()
		return
	}
	c.Gets.WithLabelValues(ResultOK).Inc()
	c.GetBytes.Add(float64(size))
}
