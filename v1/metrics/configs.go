package metrics

// Config holds the settings for the Prometheus metrics server.
type Config struct {
	// Address the /metrics HTTP server listens on, e.g. ":9090".
	Address string `yaml:"address" koanf:"address"`

	// ServiceName is attached to every metric as a constant "service" label.
	ServiceName string `yaml:"service_name" koanf:"service_name"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors alongside the application metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" koanf:"enable_default_collectors"`
}
