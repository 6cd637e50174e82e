package milvus

import (
	"fmt"
	"strings"
	"time"

	"github.com/milvus-io/milvus/client/v2/entity"
)

// Config holds connection and behavior settings for the Milvus-backed
// datastore.
//
// It is intentionally minimal and easy to override from environment
// variables, YAML, or programmatically. There is no module-level state:
// every Store gets its configuration handed to it explicitly.
//
// Example:
//
//	cfg := milvus.DefaultConfig()
//	cfg.Host = "milvus.internal"
//	cfg.Collection = "documents"
type Config struct {
	// Hostname of the Milvus server, e.g. "localhost".
	Host string `yaml:"host" koanf:"host"`

	// gRPC port of the Milvus server. Defaults to 19530.
	Port int `yaml:"port" koanf:"port"`

	// Optional credentials for secured deployments.
	Username string `yaml:"username" koanf:"username"`
	Password string `yaml:"password" koanf:"password"`

	// Secure enables TLS on the client connection.
	Secure bool `yaml:"secure" koanf:"secure"`

	// Collection this store reads and writes.
	Collection string `yaml:"collection" koanf:"collection"`

	// EmbeddingDim is the dimension of the embedding vector field. It is a
	// hard contract with the embedding generator. Defaults to 384.
	EmbeddingDim int `yaml:"embedding_dim" koanf:"embedding_dim"`

	// ConsistencyLevel applied when creating the collection and on every
	// search: "Strong", "Session", "Bounded" or "Eventually". Defaults to
	// Strong, which makes inserts visible to the next search.
	ConsistencyLevel string `yaml:"consistency_level" koanf:"consistency_level"`

	// CreateNew drops an existing collection of the same name during
	// bootstrap instead of reusing it.
	CreateNew bool `yaml:"create_new" koanf:"create_new"`

	// SearchEF is the HNSW ef search parameter. Defaults to 10.
	SearchEF int `yaml:"search_ef" koanf:"search_ef"`

	// SearchTimeout bounds each individual similarity search. Defaults to
	// 30s. A zero value disables the per-call deadline.
	SearchTimeout time.Duration `yaml:"search_timeout" koanf:"search_timeout"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Host:             "localhost",
		Port:             19530,
		Collection:       "documents",
		EmbeddingDim:     defaultEmbeddingDim,
		ConsistencyLevel: "Strong",
		SearchEF:         defaultSearchEF,
		SearchTimeout:    30 * time.Second,
	}
}

// Address returns the host:port the client dials. Connections are
// de-duplicated on this key by Pool.
func (c *Config) Address() string {
	port := c.Port
	if port == 0 {
		port = 19530
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

// withDefaults fills unset tuning knobs so the rest of the package never
// has to check for zero values.
func (c *Config) withDefaults() *Config {
	out := *c
	if out.Host == "" {
		out.Host = "localhost"
	}
	if out.Port == 0 {
		out.Port = 19530
	}
	if out.Collection == "" {
		out.Collection = "documents"
	}
	if out.EmbeddingDim <= 0 {
		out.EmbeddingDim = defaultEmbeddingDim
	}
	if out.ConsistencyLevel == "" {
		out.ConsistencyLevel = "Strong"
	}
	if out.SearchEF <= 0 {
		out.SearchEF = defaultSearchEF
	}
	return &out
}

// consistencyLevel decodes the configured level. Anything unrecognized
// falls back to Strong rather than silently weakening reads.
func (c *Config) consistencyLevel() entity.ConsistencyLevel {
	switch strings.ToLower(c.ConsistencyLevel) {
	case "session":
		return entity.ClSession
	case "bounded":
		return entity.ClBounded
	case "eventually":
		return entity.ClEventually
	default:
		return entity.ClStrong
	}
}
