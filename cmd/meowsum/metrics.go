package main

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/meowhash"
	"github.com/hupe1980/meowhash/prom"
)

// storeMetrics feeds chunk store activity to an in-memory collector for the
// summary log line and to a private Prometheus registry for --metrics-file.
type storeMetrics struct {
	basic meowhash.BasicMetricsCollector
	prom  *prom.Collector
	reg   *prometheus.Registry
}

func newStoreMetrics() (*storeMetrics, error) {
	m := &storeMetrics{
		prom: prom.NewCollector("meowsum"),
		reg:  prometheus.NewRegistry(),
	}
	if err := m.prom.Register(m.reg); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *storeMetrics) RecordHash(size int, d time.Duration) {
	m.basic.RecordHash(size, d)
	m.prom.RecordHash(size, d)
}

func (m *storeMetrics) RecordPut(size int, deduplicated bool, d time.Duration, err error) {
	m.basic.RecordPut(size, deduplicated, d, err)
	m.prom.RecordPut(size, deduplicated, d, err)
}

func (m *storeMetrics) RecordGet(size int, d time.Duration, err error) {
	m.basic.RecordGet(size, d, err)
	m.prom.RecordGet(size, d, err)
}

// writeTextfile writes the registry in the Prometheus text format, the
// input of the node_exporter textfile collector. An empty path is a no-op.
func (m *storeMetrics) writeTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
