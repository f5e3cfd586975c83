// Package prom exports meowhash hashing and chunk store activity as
// Prometheus metrics.
//
//	c := prom.NewCollector("meowhash")
//	if err := c.Register(prometheus.DefaultRegisterer); err != nil { ... }
//	store, err := dedup.New(backend, dedup.WithMetrics(c))
package prom
