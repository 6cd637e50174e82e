// Package embedding computes dense vectors for document chunks and
// queries through an OpenAI-compatible /embeddings endpoint.
//
// The package exposes a small surface: a Config, a Client with a single
// Embed method, and an fx module for dependency injection. The Client
// validates that every returned vector has the configured dimension, so
// a misconfigured model is caught before anything reaches the vector
// store.
//
// # Usage
//
//	client, err := embedding.NewClient(&embedding.Config{
//	    Endpoint:  "http://localhost:8080/v1",
//	    Model:     "all-MiniLM-L6-v2",
//	    Dimension: 384,
//	})
//	if err != nil {
//	    return err
//	}
//	vectors, err := client.Embed(ctx, []string{"first chunk", "second chunk"})
//
// With fx, include FXModule and provide a *Config.
package embedding
