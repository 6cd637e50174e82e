package milvus

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"
)

// HNSW parameters for the primary index attempt.
const (
	hnswM              = 8
	hnswEfConstruction = 64
)

// ensureCollection brings the collection into a searchable state: create
// it (dropping first when createNew), make sure the embedding field is
// indexed, and load it into memory. Safe to call repeatedly.
func (s *Store) ensureCollection(ctx context.Context, createNew bool) error {
	name := s.cfg.Collection

	exists, err := s.api.HasCollection(ctx, milvusclient.NewHasCollectionOption(name))
	if err != nil {
		return fmt.Errorf("milvus: check collection %q: %w", name, err)
	}

	if exists && createNew {
		if err := s.api.DropCollection(ctx, milvusclient.NewDropCollectionOption(name)); err != nil {
			return fmt.Errorf("milvus: drop collection %q: %w", name, err)
		}
		exists = false
	}

	if !exists {
		schema := collectionSchema(name, s.cfg.EmbeddingDim)
		opt := milvusclient.NewCreateCollectionOption(name, schema).
			WithConsistencyLevel(s.cfg.consistencyLevel())
		if err := s.api.CreateCollection(ctx, opt); err != nil {
			return fmt.Errorf("milvus: create collection %q: %w", name, err)
		}
		s.log.Info("created collection", zap.String("collection", name),
			zap.Int("dim", s.cfg.EmbeddingDim))
	}

	if err := s.ensureIndex(ctx); err != nil {
		return err
	}

	task, err := s.api.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(name))
	if err != nil {
		return fmt.Errorf("milvus: load collection %q: %w", name, err)
	}
	// Searches against a collection that is still loading fail, so the
	// store is not ready until the load task completes.
	if err := task.Await(ctx); err != nil {
		return fmt.Errorf("milvus: await load of %q: %w", name, err)
	}
	return nil
}

// ensureIndex creates the vector index when none exists and records the
// resulting index type, which drives the search params at query time.
// HNSW is tried first; managed deployments that reject it (Zilliz Cloud)
// get AUTOINDEX instead. A failure of the fallback is fatal.
func (s *Store) ensureIndex(ctx context.Context) error {
	name := s.cfg.Collection

	indexes, err := s.api.ListIndexes(ctx, milvusclient.NewListIndexOption(name))
	if err != nil {
		return fmt.Errorf("milvus: list indexes on %q: %w", name, err)
	}
	if len(indexes) > 0 {
		desc, err := s.api.DescribeIndex(ctx, milvusclient.NewDescribeIndexOption(name, indexes[0]))
		if err != nil {
			return fmt.Errorf("milvus: describe index %q on %q: %w", indexes[0], name, err)
		}
		s.indexType = desc.IndexType()
		return nil
	}

	hnsw := index.NewHNSWIndex(entity.L2, hnswM, hnswEfConstruction)
	_, err = s.api.CreateIndex(ctx, milvusclient.NewCreateIndexOption(name, fieldEmbedding, hnsw))
	if err == nil {
		s.indexType = index.HNSW
		s.log.Info("created HNSW index", zap.String("collection", name))
		return nil
	}
	s.log.Warn("HNSW index rejected, falling back to AUTOINDEX",
		zap.String("collection", name), zap.Error(err))

	auto := index.NewAutoIndex(entity.L2)
	if _, err := s.api.CreateIndex(ctx, milvusclient.NewCreateIndexOption(name, fieldEmbedding, auto)); err != nil {
		return fmt.Errorf("milvus: create AUTOINDEX on %q: %w", name, err)
	}
	s.indexType = index.AUTOINDEX
	s.log.Info("created AUTOINDEX index", zap.String("collection", name))
	return nil
}
