// Package config loads the service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/semantic-retrieval/std/internal/api"
	"github.com/semantic-retrieval/std/v1/embedding"
	"github.com/semantic-retrieval/std/v1/logger"
	"github.com/semantic-retrieval/std/v1/metrics"
	"github.com/semantic-retrieval/std/v1/milvus"
	"github.com/semantic-retrieval/std/v1/tracer"
)

// envPrefix namespaces the environment overrides. A double underscore
// separates nesting levels, so RETRIEVAL_MILVUS__EMBEDDING_DIM overrides
// milvus.embedding_dim.
const envPrefix = "RETRIEVAL_"

// Config aggregates the settings of every component of the service.
type Config struct {
	Server    api.Config       `yaml:"server" koanf:"server"`
	Milvus    milvus.Config    `yaml:"milvus" koanf:"milvus"`
	Embedding embedding.Config `yaml:"embedding" koanf:"embedding"`
	Logger    logger.Config    `yaml:"logger" koanf:"logger"`
	Metrics   metrics.Config   `yaml:"metrics" koanf:"metrics"`
	Tracer    tracer.Config    `yaml:"tracer" koanf:"tracer"`

	// TracingEnabled turns the OTLP exporter on. Off by default so the
	// service runs without a collector.
	TracingEnabled bool `yaml:"tracing_enabled" koanf:"tracing_enabled"`
}

// DefaultConfig provides a runnable local-development configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: api.Config{
			Address: ":8000",
		},
		Milvus: *milvus.DefaultConfig(),
		Embedding: embedding.Config{
			Dimension: 384,
		},
		Logger: logger.Config{
			Level:       logger.Info,
			ServiceName: "retrieval",
		},
		Metrics: metrics.Config{
			Address:                 ":9090",
			ServiceName:             "retrieval",
			EnableDefaultCollectors: true,
		},
		Tracer: tracer.Config{
			Endpoint:    "localhost:4318",
			ServiceName: "retrieval",
			Insecure:    true,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (RETRIEVAL_*). A missing file is not an
// error; the defaults plus environment apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}
