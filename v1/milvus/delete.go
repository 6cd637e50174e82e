package milvus

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus/client/v2/milvusclient"
	"go.uber.org/zap"

	"github.com/semantic-retrieval/std/v1/datastore"
)

// Delete removes chunks selected by the request. DeleteAll wins over the
// other selectors and rebuilds the collection from scratch. Document ids
// and metadata filters are resolved to primary keys first, so both paths
// share one delete expression shape.
func (s *Store) Delete(ctx context.Context, req datastore.DeleteRequest) (ok bool, err error) {
	start := time.Now()
	var removed int64
	defer func() { s.observe("delete", start, removed, err) }()

	if req.DeleteAll {
		if err := s.recreateCollection(ctx); err != nil {
			return false, err
		}
		s.log.Info("dropped and recreated collection",
			zap.String("collection", s.cfg.Collection))
		return true, nil
	}

	if len(req.IDs) > 0 {
		n, err := s.deleteByExpr(ctx, documentIDsExpr(req.IDs))
		if err != nil {
			return false, err
		}
		removed += n
	}

	if req.Filter != nil {
		if expr := filterExpr(req.Filter); expr != "" {
			n, err := s.deleteByExpr(ctx, expr)
			if err != nil {
				return false, err
			}
			removed += n
		}
	}

	s.log.Debug("deleted chunks", zap.Int64("rows", removed))
	return true, nil
}

// deleteByExpr looks up the primary keys matching expr and deletes them.
func (s *Store) deleteByExpr(ctx context.Context, expr string) (int64, error) {
	set, err := s.api.Query(ctx, milvusclient.NewQueryOption(s.cfg.Collection).
		WithFilter(expr).
		WithOutputFields(fieldPK))
	if err != nil {
		return 0, fmt.Errorf("milvus: resolve primary keys for %q: %w", expr, err)
	}

	col := set.GetColumn(fieldPK)
	if col == nil || col.Len() == 0 {
		return 0, nil
	}
	pks := make([]int64, col.Len())
	for i := range pks {
		if pks[i], err = col.GetAsInt64(i); err != nil {
			return 0, err
		}
	}

	result, err := s.api.Delete(ctx, milvusclient.NewDeleteOption(s.cfg.Collection).
		WithExpr(primaryKeysExpr(pks)))
	if err != nil {
		return 0, fmt.Errorf("milvus: delete %d rows: %w", len(pks), err)
	}
	return result.DeleteCount, nil
}

// recreateCollection releases and drops the collection, then bootstraps a
// fresh empty one with the same schema and index.
func (s *Store) recreateCollection(ctx context.Context) error {
	name := s.cfg.Collection
	if err := s.api.ReleaseCollection(ctx, milvusclient.NewReleaseCollectionOption(name)); err != nil {
		return fmt.Errorf("milvus: release collection %q: %w", name, err)
	}
	if err := s.api.DropCollection(ctx, milvusclient.NewDropCollectionOption(name)); err != nil {
		return fmt.Errorf("milvus: drop collection %q: %w", name, err)
	}
	return s.ensureCollection(ctx, false)
}
