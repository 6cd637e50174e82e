// Package observability defines the hook through which adapter packages
// report operation outcomes without depending on a concrete metrics or
// tracing backend.
package observability

import "time"

// OperationContext carries everything an Observer needs to record a
// single completed operation.
type OperationContext struct {
	// Component is the adapter reporting the operation, e.g. "milvus".
	Component string
	// Operation is the logical action, e.g. "upsert", "query", "delete".
	Operation string
	// Resource identifies the primary target, e.g. the collection name.
	Resource string
	// SubResource optionally narrows the target, e.g. a batch number.
	SubResource string

	Duration time.Duration
	Error    error

	// Size is operation-defined: rows written, hits returned, rows deleted.
	Size int64

	Metadata map[string]any
}

// Observer receives completed operations. Implementations must be safe
// for concurrent use and must not block.
type Observer interface {
	ObserveOperation(op OperationContext)
}

// NoopObserver discards all observations.
type NoopObserver struct{}

func (NoopObserver) ObserveOperation(OperationContext) {}
