// Package datastore provides a database-agnostic abstraction for storing
// and retrieving document text chunks by vector similarity.
//
// # Overview
//
// The package defines the [DataStore] interface plus the entity and filter
// types it exchanges. Concrete adapters (currently the milvus package)
// implement the interface; applications depend only on this package and
// never import store-specific clients.
//
//	┌─────────────────────────────────────────────┐
//	│              Application Layer              │
//	│   (uses datastore.DataStore, no driver      │
//	│    imports)                                 │
//	└─────────────────────┬───────────────────────┘
//	                      │
//	                      ▼
//	┌─────────────────────────────────────────────┐
//	│            datastore.DataStore              │
//	│    (interface + store-agnostic types)       │
//	└─────────────────────┬───────────────────────┘
//	                      │
//	                      ▼
//	┌─────────────────────────────────────────────┐
//	│               milvus.Store                  │
//	│              (implements)                   │
//	└─────────────────────────────────────────────┘
//
// # Entities
//
// A [Document] is chunked upstream into [DocumentChunk] values, each with a
// fixed-dimension embedding. Chunks are grouped by document id on upsert,
// searched via [QueryWithEmbedding], and returned as
// [DocumentChunkWithScore]. All values are ephemeral request/response data;
// the only persistent state lives in the external store.
//
// # Filtering
//
// [DocumentMetadataFilter] supports equality on document_id, source_id,
// author and the declared [Source] enum, plus a CreatedAt date range. All
// set fields are ANDed; an empty filter means no constraint.
//
// This package is intentionally dependency-free so it can sit at the bottom
// of any application's import graph.
package datastore
