package milvus

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/semantic-retrieval/std/v1/datastore"
)

const defaultTopK = 10

// searchParams returns the query-time tuning params matching the index
// the collection actually carries. AUTOINDEX takes none.
func (s *Store) searchParams() map[string]string {
	if s.indexType == index.HNSW {
		return map[string]string{"ef": strconv.Itoa(s.cfg.SearchEF)}
	}
	return nil
}

// Query runs every similarity search concurrently and returns results in
// the order the queries were given. A single failing search fails the call.
func (s *Store) Query(ctx context.Context, queries []datastore.QueryWithEmbedding) (results []datastore.QueryResult, err error) {
	start := time.Now()
	var hits int64
	defer func() { s.observe("query", start, hits, err) }()

	results = make([]datastore.QueryResult, len(queries))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, q := range queries {
		group.Go(func() error {
			result, err := s.search(groupCtx, q)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		hits += int64(len(r.Results))
	}
	s.log.Debug("ran similarity searches",
		zap.Int("queries", len(queries)),
		zap.Int64("hits", hits))
	return results, nil
}

func (s *Store) search(ctx context.Context, q datastore.QueryWithEmbedding) (datastore.QueryResult, error) {
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	topK := q.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	opt := milvusclient.NewSearchOption(s.cfg.Collection, topK,
		[]entity.Vector{entity.FloatVector(q.Embedding)}).
		WithANNSField(fieldEmbedding).
		WithOutputFields(outputFields()...).
		WithConsistencyLevel(s.cfg.consistencyLevel())
	for k, v := range s.searchParams() {
		opt = opt.WithSearchParam(k, v)
	}
	if expr := filterExpr(q.Filter); expr != "" {
		opt = opt.WithFilter(expr)
	}

	sets, err := s.api.Search(ctx, opt)
	if err != nil {
		return datastore.QueryResult{}, fmt.Errorf("milvus: search %q: %w", q.Query, err)
	}

	result := datastore.QueryResult{Query: q.Query}
	for _, set := range sets {
		chunks, err := resultChunks(set)
		if err != nil {
			return datastore.QueryResult{}, err
		}
		result.Results = append(result.Results, chunks...)
	}
	return result, nil
}

// resultChunks converts one result set back into scored chunks. Unknown
// source values and the created_at sentinel come back as absent metadata.
func resultChunks(set milvusclient.ResultSet) ([]datastore.DocumentChunkWithScore, error) {
	chunks := make([]datastore.DocumentChunkWithScore, 0, set.ResultCount)
	for i := 0; i < set.ResultCount; i++ {
		var chunk datastore.DocumentChunkWithScore

		str := func(field string) (string, error) {
			col := set.GetColumn(field)
			if col == nil {
				return "", fmt.Errorf("milvus: search result misses field %q", field)
			}
			return col.GetAsString(i)
		}

		var err error
		if chunk.Text, err = str(fieldText); err != nil {
			return nil, err
		}
		if chunk.Metadata.DocumentID, err = str(fieldDocumentID); err != nil {
			return nil, err
		}
		if chunk.Metadata.SourceID, err = str(fieldSourceID); err != nil {
			return nil, err
		}
		if chunk.ID, err = str(fieldChunkID); err != nil {
			return nil, err
		}
		if chunk.Metadata.URL, err = str(fieldURL); err != nil {
			return nil, err
		}
		if chunk.Metadata.Author, err = str(fieldAuthor); err != nil {
			return nil, err
		}

		raw, err := str(fieldSource)
		if err != nil {
			return nil, err
		}
		if source, ok := datastore.ParseSource(raw); ok {
			chunk.Metadata.Source = source
		}

		createdCol := set.GetColumn(fieldCreatedAt)
		if createdCol == nil {
			return nil, fmt.Errorf("milvus: search result misses field %q", fieldCreatedAt)
		}
		created, err := createdCol.GetAsInt64(i)
		if err != nil {
			return nil, err
		}
		if created != absentCreatedAt {
			t := time.Unix(created, 0).UTC()
			chunk.Metadata.CreatedAt = &t
		}

		chunk.Score = set.Scores[i]
		chunks = append(chunks, chunk)
	}
	return chunks, nil
}
