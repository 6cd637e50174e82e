package milvus

import (
	"time"

	"github.com/semantic-retrieval/std/v1/observability"
)

const componentName = "milvus"

// observe reports one finished operation against the configured collection.
func (s *Store) observe(operation string, start time.Time, size int64, err error) {
	s.observer.ObserveOperation(observability.OperationContext{
		Component: componentName,
		Operation: operation,
		Resource:  s.cfg.Collection,
		Duration:  time.Since(start),
		Error:     err,
		Size:      size,
	})
}
