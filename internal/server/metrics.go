// Package server exposes the sampler's Prometheus metrics over HTTP.
// The endpoint is opt-in: nothing listens unless a metrics address is
// configured.
package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the sampler's Prometheus instruments. Each instance owns its
// registry, so tests can create metrics freely without global-registration
// panics.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	heapUsedBytes    prometheus.Gauge
	snapshotsTotal   prometheus.Counter
	snapshotsSkipped prometheus.Counter
	snapshotFailures prometheus.Counter
}

// NewMetrics creates the sampler metrics and their HTTP handler.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		heapUsedBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "heapwatch_heap_used_bytes",
			Help: "Live heap bytes at the most recent sampler reading.",
		}),
		snapshotsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heapwatch_snapshots_total",
			Help: "Heap snapshot files written successfully.",
		}),
		snapshotsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heapwatch_snapshots_skipped_total",
			Help: "Snapshot attempts skipped because heap usage exceeded the safe threshold.",
		}),
		snapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heapwatch_snapshot_failures_total",
			Help: "Snapshot attempts that failed during serialization.",
		}),
	}
	reg.MustRegister(
		m.heapUsedBytes,
		m.snapshotsTotal,
		m.snapshotsSkipped,
		m.snapshotFailures,
		collectors.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// SetHeapUsedBytes records the most recent heap reading.
func (m *Metrics) SetHeapUsedBytes(b uint64) {
	m.heapUsedBytes.Set(float64(b))
}

// SnapshotWritten counts a successful snapshot write.
func (m *Metrics) SnapshotWritten() { m.snapshotsTotal.Inc() }

// SnapshotSkipped counts a snapshot skipped by the threshold gate.
func (m *Metrics) SnapshotSkipped() { m.snapshotsSkipped.Inc() }

// SnapshotFailed counts a failed snapshot serialization.
func (m *Metrics) SnapshotFailed() { m.snapshotFailures.Inc() }
