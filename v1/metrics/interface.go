package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/semantic-retrieval/std/v1/observability"
)

// MetricsCollector provides an interface for collecting and exposing
// application metrics. It extends the datastore observer contract with
// dynamic metric factories.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	observability.Observer

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
