package datastore

import "context"

// DataStore is the common interface for document chunk stores. It provides
// a database-agnostic abstraction over vector similarity search so that
// applications can switch stores without changing application code.
//
// Example usage:
//
//	func NewRetrievalService(store datastore.DataStore) *RetrievalService {
//	    return &RetrievalService{store: store}
//	}
type DataStore interface {
	// Upsert stores the given chunks, keyed by the document id they belong
	// to. It returns the ids of documents for which at least one chunk was
	// accepted for insertion. Chunks missing a required field are skipped,
	// not errors; store failures during insertion are returned unmodified
	// and earlier batches are not rolled back.
	Upsert(ctx context.Context, chunks map[string][]DocumentChunk) ([]string, error)

	// Query runs one similarity search per entry, concurrently, and returns
	// results in input order. A failure in any search fails the whole call.
	Query(ctx context.Context, queries []QueryWithEmbedding) ([]QueryResult, error)

	// Delete removes chunks selected by the request. It reports true once
	// every selected path completed, even when nothing matched.
	Delete(ctx context.Context, req DeleteRequest) (bool, error)
}
