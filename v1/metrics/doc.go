// Package metrics provides Prometheus instrumentation for the retrieval
// services.
//
// Each service gets an isolated registry, a constant service label, and an
// HTTP server exposing /metrics for scraping. The package implements
// [observability.Observer], so datastore adapters report operation
// outcomes here without a direct Prometheus dependency.
//
// # Built-in Metrics
//
//   - datastore_operations_total{component, operation, status}
//   - datastore_operation_duration_seconds{component, operation}
//   - datastore_operation_rows{component, operation}
//
// plus the standard Go runtime, process and build info collectors when
// enabled.
//
// # Usage
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    ServiceName: "retrieval",
//	})
//	go m.Server.ListenAndServe()
//
// With fx, use FXModule, which also wires *Metrics in as the application's
// observability.Observer.
package metrics
