package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer and enforces the vector dimension the
// downstream store expects.
type Client struct {
	provider  Provider
	dimension int
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	return &Client{
		provider:  newInferenceProvider(cfg),
		dimension: cfg.Dimension,
	}, nil
}

// Embed computes one vector per text, in input order. Vectors with an
// unexpected dimension fail the whole call: letting them through would
// poison the collection.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := c.provider.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	for i, v := range vectors {
		if len(v) != c.dimension {
			return nil, fmt.Errorf("embedding: vector %d has dimension %d, expected %d", i, len(v), c.dimension)
		}
	}
	return vectors, nil
}

// Close releases any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
