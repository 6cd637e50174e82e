package metrics

import (
	"github.com/semantic-retrieval/std/v1/observability"
)

// ObserveOperation implements observability.Observer. Every completed
// datastore operation becomes one counter increment plus duration and
// size histogram samples.
func (m *Metrics) ObserveOperation(op observability.OperationContext) {
	status := "success"
	if op.Error != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(op.Component, op.Operation, status).Inc()
	m.operationDuration.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())
	m.operationSize.WithLabelValues(op.Component, op.Operation).Observe(float64(op.Size))
}
