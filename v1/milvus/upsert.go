package milvus

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/milvus-io/milvus/client/v2/column"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"

	"github.com/semantic-retrieval/std/v1/datastore"
)

// Upsert writes the chunks of each document into the collection and returns
// the ids of documents that contributed at least one stored row. Chunks
// missing a required field (text or embedding) are skipped with a warning
// rather than failing the batch.
func (s *Store) Upsert(ctx context.Context, chunks map[string][]datastore.DocumentChunk) (ids []string, err error) {
	start := time.Now()
	var written int64
	defer func() { s.observe("upsert", start, written, err) }()

	buffers := newColumnBuffers()
	survivors := make(map[string]struct{}, len(chunks))

	for docID, docChunks := range chunks {
		for _, chunk := range docChunks {
			row, missing, ok := chunkValues(chunk)
			if !ok {
				s.log.Warn("skipping chunk without required field",
					zap.String("document_id", docID),
					zap.String("chunk_id", chunk.ID),
					zap.String("field", missing))
				continue
			}
			for i, v := range row {
				if err := buffers[i].push(v); err != nil {
					return nil, err
				}
			}
			survivors[docID] = struct{}{}
		}
	}

	total := buffers[0].rows()
	for from := 0; from < total; from += upsertBatchSize {
		to := from + upsertBatchSize
		if to > total {
			to = total
		}
		columns := make([]column.Column, len(buffers))
		for i, b := range buffers {
			columns[i] = b.column(from, to, s.cfg.EmbeddingDim)
		}
		result, err := s.api.Insert(ctx, milvusclient.NewColumnBasedInsertOption(s.cfg.Collection, columns...))
		if err != nil {
			return nil, fmt.Errorf("milvus: insert rows %d..%d: %w", from, to, err)
		}
		written += result.InsertCount
	}

	ids = make([]string, 0, len(survivors))
	for id := range survivors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	s.log.Debug("upserted chunks",
		zap.Int("rows", total),
		zap.Int("documents", len(ids)))
	return ids, nil
}
