// Package milvus provides a Milvus-backed implementation of the
// database-agnostic datastore.DataStore interface.
//
// The package stores document chunks (text plus embedding vector plus
// metadata) in a single Milvus collection and serves similarity search
// over them. It integrates with the fx dependency injection framework
// and supports builder-style configuration.
//
// # Core Features
//
//   - Managed client lifecycle with Fx integration
//   - Config struct supporting environment and YAML loading
//   - Collection bootstrap: schema creation, vector index, memory load
//   - HNSW index with automatic AUTOINDEX fallback for managed clusters
//   - Batched columnar inserts with required-field validation per chunk
//   - Concurrent similarity searches with per-call timeouts
//   - Metadata filter compilation into Milvus boolean expressions
//   - Optional connection pooling across stores sharing one server
//
// # Basic Usage
//
//	cfg := milvus.DefaultConfig()
//	cfg.Host = "localhost"
//	cfg.Collection = "documents"
//
//	store, err := milvus.NewStore(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer store.Close(ctx)
//
//	ids, err := store.Upsert(ctx, chunks)
//
// # DataStore Interface
//
// *Store implements [datastore.DataStore], so application code depends on
// the interface and stays portable across vector database backends:
//
//	var ds datastore.DataStore = store
//
// # Fx Integration
//
//	app := fx.New(
//	    milvus.FXModule,
//	    fx.Provide(func() *milvus.Config { return loadConfig() }),
//	    fx.Invoke(func(ds datastore.DataStore) { ... }),
//	)
package milvus
