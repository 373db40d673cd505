// Package observability defines the hook through which kafkalens components report
// the operations they perform.
//
// Components never depend on a metrics or tracing backend directly. They accept an
// optional Observer and call ObserveOperation once per operation; adapters such as
// metrics.NewObserverAdapter turn those notifications into Prometheus series.
//
// Example:
//
//	codec := avro.NewCodec(provider).WithObserver(metrics.NewObserverAdapter(m))
package observability

import "time"

// OperationContext describes a single completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "avro", "schema_registry" or "kafka".
	Component string

	// Operation is the operation name within the component, e.g. "decode".
	Operation string

	// Resource is the primary object of the operation (subject, topic, schema id).
	Resource string

	// SubResource adds detail to Resource, e.g. a partition.
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the error the operation failed with, nil on success.
	Error error

	// Size is the number of bytes processed, 0 when not applicable.
	Size int64

	// Metadata carries component specific labels.
	Metadata map[string]interface{}
}

// Observer receives operation notifications. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
