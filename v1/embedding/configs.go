package embedding

import (
	"fmt"
	"time"
)

// Config holds the settings for the embedding client.
type Config struct {
	// Endpoint is the base URL of the OpenAI-compatible inference service,
	// without the /embeddings path. The provider appends paths itself.
	Endpoint string `yaml:"endpoint" koanf:"endpoint"`

	// Model requested from the inference service.
	Model string `yaml:"model" koanf:"model"`

	// APIKey is sent as a bearer token when set.
	APIKey string `yaml:"api_key" koanf:"api_key"`

	// Dimension every returned vector must have. It is the contract with
	// the vector store's collection schema. Defaults to 384.
	Dimension int `yaml:"dimension" koanf:"dimension"`

	// Timeout for each HTTP request. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Dimension: 384,
		Timeout:   30 * time.Second,
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: endpoint is required")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: model is required")
	}
	return nil
}

func (c *Config) withDefaults() *Config {
	out := *c
	if out.Dimension <= 0 {
		out.Dimension = 384
	}
	if out.Timeout <= 0 {
		out.Timeout = 30 * time.Second
	}
	return &out
}
