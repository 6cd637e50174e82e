package datastore

import "time"

// Source identifies where a document originally came from.
type Source string

const (
	SourceEmail Source = "email"
	SourceFile  Source = "file"
	SourceChat  Source = "chat"
)

// ParseSource maps a stored string back to a declared Source value.
// The second return value is false for anything that is not a declared
// member, including the empty string.
func ParseSource(s string) (Source, bool) {
	switch Source(s) {
	case SourceEmail, SourceFile, SourceChat:
		return Source(s), true
	default:
		return "", false
	}
}

// DocumentMetadata describes a whole document. All fields are optional.
type DocumentMetadata struct {
	Source    Source     `json:"source,omitempty"`
	SourceID  string     `json:"source_id,omitempty"`
	URL       string     `json:"url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Author    string     `json:"author,omitempty"`
}

// Document is the unit callers submit for ingestion. ID may be empty, in
// which case the service assigns one before chunking.
type Document struct {
	ID       string           `json:"id,omitempty"`
	Text     string           `json:"text"`
	Metadata DocumentMetadata `json:"metadata,omitempty"`
}

// DocumentChunkMetadata is the per-chunk metadata stored alongside the
// embedding. DocumentID links the chunk back to its parent document.
type DocumentChunkMetadata struct {
	DocumentMetadata
	DocumentID string `json:"document_id,omitempty"`
}

// DocumentChunk is the atomic unit stored and retrieved: a contiguous span
// of a document's text plus its embedding and metadata. Chunks are owned by
// the caller and consumed transiently during upsert; the store keeps no
// reference to them after insertion.
type DocumentChunk struct {
	ID        string                `json:"id"`
	Text      string                `json:"text"`
	Embedding []float32             `json:"embedding,omitempty"`
	Metadata  DocumentChunkMetadata `json:"metadata"`
}

// DocumentChunkWithScore is a retrieved chunk plus its similarity score.
// The score is the store's distance metric; interpretation (lower or higher
// is better) depends on the configured metric. The embedding is never
// returned, it would cost a second round-trip for data callers already have.
type DocumentChunkWithScore struct {
	ID       string                `json:"id"`
	Text     string                `json:"text"`
	Metadata DocumentChunkMetadata `json:"metadata"`
	Score    float32               `json:"score"`
}

// QueryWithEmbedding is a single similarity search: the original query
// string, its embedding, the number of neighbours to return, and an
// optional metadata filter.
type QueryWithEmbedding struct {
	Query     string                  `json:"query"`
	Embedding []float32               `json:"embedding"`
	TopK      int                     `json:"top_k"`
	Filter    *DocumentMetadataFilter `json:"filter,omitempty"`
}

// QueryResult holds the ranked results for one query, in store order.
type QueryResult struct {
	Query   string                   `json:"query"`
	Results []DocumentChunkWithScore `json:"results"`
}
