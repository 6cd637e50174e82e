package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/semantic-retrieval/std/v1/datastore"
	"github.com/semantic-retrieval/std/v1/logger"
)

// Embedder computes one vector per text, in input order.
// *embedding.Client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// ErrNoSelector is returned when a delete request names nothing to delete.
var ErrNoSelector = errors.New("api: delete needs ids, a filter, or delete_all")

// Service implements the retrieval operations behind the HTTP handlers:
// chunk and embed documents on upsert, embed query strings on query, and
// pass deletes through to the datastore.
type Service struct {
	store      datastore.DataStore
	embedder   Embedder
	log        *logger.Logger
	chunkWords int
}

// NewService wires the datastore and embedder together. chunkWords <= 0
// selects the default window size.
func NewService(store datastore.DataStore, embedder Embedder, log *logger.Logger, chunkWords int) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	if chunkWords <= 0 {
		chunkWords = defaultChunkWords
	}
	return &Service{
		store:      store,
		embedder:   embedder,
		log:        log,
		chunkWords: chunkWords,
	}
}

// Upsert chunks every document, embeds all chunks in one call and stores
// them. Documents without an id get a generated UUID. Returns the ids of
// documents the datastore accepted.
func (s *Service) Upsert(ctx context.Context, docs []datastore.Document) ([]string, error) {
	chunksByDoc := make(map[string][]datastore.DocumentChunk, len(docs))
	for _, doc := range docs {
		docID := doc.ID
		if docID == "" {
			docID = uuid.NewString()
		}

		pieces := chunkText(doc.Text, s.chunkWords)
		if len(pieces) == 0 {
			s.log.WarnWithContext(ctx, "document has no chunkable text",
				zap.String("document_id", docID))
			continue
		}

		offset := len(chunksByDoc[docID])
		for n, piece := range pieces {
			chunksByDoc[docID] = append(chunksByDoc[docID], datastore.DocumentChunk{
				ID:   chunkID(docID, offset+n),
				Text: piece,
				Metadata: datastore.DocumentChunkMetadata{
					DocumentMetadata: doc.Metadata,
					DocumentID:       docID,
				},
			})
		}
	}

	// Collect texts only after all chunks exist: appending above may move
	// slice backing arrays, so pointers must be taken last.
	var texts []string
	var flat []*datastore.DocumentChunk
	for docID := range chunksByDoc {
		chunks := chunksByDoc[docID]
		for i := range chunks {
			texts = append(texts, chunks[i].Text)
			flat = append(flat, &chunks[i])
		}
	}

	if len(flat) == 0 {
		return nil, nil
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("api: embed %d chunks: %w", len(texts), err)
	}
	if len(vectors) != len(flat) {
		return nil, fmt.Errorf("api: embedded %d chunks, expected %d", len(vectors), len(flat))
	}
	for i, chunk := range flat {
		chunk.Embedding = vectors[i]
	}

	ids, err := s.store.Upsert(ctx, chunksByDoc)
	if err != nil {
		return nil, err
	}
	s.log.InfoWithContext(ctx, "upserted documents",
		zap.Int("documents", len(ids)),
		zap.Int("chunks", len(flat)))
	return ids, nil
}

// Query embeds the query strings and runs the similarity searches.
func (s *Service) Query(ctx context.Context, queries []Query) ([]datastore.QueryResult, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	texts := make([]string, len(queries))
	for i, q := range queries {
		texts[i] = q.Query
	}
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("api: embed %d queries: %w", len(queries), err)
	}
	if len(vectors) != len(queries) {
		return nil, fmt.Errorf("api: embedded %d queries, expected %d", len(vectors), len(queries))
	}

	withEmbedding := make([]datastore.QueryWithEmbedding, len(queries))
	for i, q := range queries {
		withEmbedding[i] = datastore.QueryWithEmbedding{
			Query:     q.Query,
			Embedding: vectors[i],
			TopK:      q.TopK,
			Filter:    q.Filter,
		}
	}
	return s.store.Query(ctx, withEmbedding)
}

// Delete forwards the request to the datastore. A request without any
// selector is rejected with ErrNoSelector.
func (s *Service) Delete(ctx context.Context, req DeleteRequest) (bool, error) {
	noFilter := req.Filter == nil || req.Filter.IsZero()
	if len(req.IDs) == 0 && noFilter && !req.DeleteAll {
		return false, ErrNoSelector
	}
	return s.store.Delete(ctx, datastore.DeleteRequest{
		IDs:       req.IDs,
		Filter:    req.Filter,
		DeleteAll: req.DeleteAll,
	})
}
