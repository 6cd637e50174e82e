package tracer

// Config holds the settings for the OpenTelemetry tracer.
type Config struct {
	// Endpoint of the OTLP/HTTP collector, host:port without scheme,
	// e.g. "localhost:4318".
	Endpoint string `yaml:"endpoint" koanf:"endpoint"`

	// ServiceName identifies this process in exported traces.
	ServiceName string `yaml:"service_name" koanf:"service_name"`

	// Insecure disables TLS towards the collector. Intended for local
	// development setups only.
	Insecure bool `yaml:"insecure" koanf:"insecure"`

	// SampleRatio is the fraction of traces to sample in [0, 1].
	// Zero means sample everything.
	SampleRatio float64 `yaml:"sample_ratio" koanf:"sample_ratio"`
}
