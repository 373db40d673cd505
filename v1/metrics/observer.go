package metrics

import (
	"github.com/Aleph-Alpha/kafkalens/v1/observability"
)

// ObserverAdapter turns operation notifications into Prometheus series.
type ObserverAdapter struct {
	collector MetricsCollector
}

// NewObserverAdapter returns an observability.Observer that records every
// notification in collector.
//
// Recorded series:
//   - operations_total{component, operation, status, kind}
//   - operation_duration_seconds{component, operation}
//   - payload_size_bytes{component, operation} when Size > 0
//   - consumer_lag{topic, partition} when Metadata carries "lag"
//
// Example:
//
//	m := metrics.NewMetrics(cfg)
//	codec := avro.NewCodec(provider).WithObserver(metrics.NewObserverAdapter(m))
func NewObserverAdapter(collector MetricsCollector) *ObserverAdapter {
	return &ObserverAdapter{collector: collector}
}

// ObserveOperation implements observability.Observer.
func (a *ObserverAdapter) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	kind := ""
	if ctx.Error != nil {
		status = "error"
		kind = "unknown"
	}
	if k, ok := ctx.Metadata["kind"].(string); ok && k != "" {
		kind = k
	}
	a.collector.IncrementOperations(ctx.Component, ctx.Operation, status, kind)

	a.collector.ObserveDuration(ctx.Duration, ctx.Component, ctx.Operation)

	if ctx.Size > 0 {
		a.collector.ObservePayloadSize(ctx.Size, ctx.Component, ctx.Operation)
	}

	if lag, ok := ctx.Metadata["lag"]; ok {
		if v, ok := toFloat(lag); ok {
			a.collector.ObserveConsumerLag(v, ctx.Resource, ctx.SubResource)
		}
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

var _ observability.Observer = (*ObserverAdapter)(nil)
var _ MetricsCollector = (*Metrics)(nil)

