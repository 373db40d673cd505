package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

var carrierPropagator = propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

// RecordErrorOnSpan records an error on a span and sets its status to error.
//
// Example:
//
//	ctx, span := tr.StartSpan(ctx, "avro.decode")
//	defer span.End()
//
//	out, err := codec.Decode(ctx, record)
//	if err != nil {
//	    tr.RecordErrorOnSpan(span, err)
//	    return err
//	}
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// StartSpan creates a new span with the given name and returns an updated context
// containing the span, along with the span itself.
//
// The created span becomes a child of any span that exists in the provided context.
// If no span exists in the context, a new root span is created. The span must be
// ended by the caller.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, traceSpan.Span) {
	return t.tracer.Tracer("kafkalens").Start(ctx, name)
}

// SetAttributes adds attributes to a span. Values can be strings, ints, int64s,
// float64s or booleans; other types are converted with fmt.Sprint.
//
// Example:
//
//	tr.SetAttributes(span, map[string]interface{}{
//	    "messaging.destination": "orders",
//	    "avro.schema_id":        42,
//	})
func (t *Tracer) SetAttributes(span traceSpan.Span, attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	attributes := make([]attribute.KeyValue, 0, len(attrs))

	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			attributes = append(attributes, attribute.String(k, val))
		case int:
			attributes = append(attributes, attribute.Int(k, val))
		case int64:
			attributes = append(attributes, attribute.Int64(k, val))
		case float64:
			attributes = append(attributes, attribute.Float64(k, val))
		case bool:
			attributes = append(attributes, attribute.Bool(k, val))
		default:
			attributes = append(attributes, attribute.String(k, fmt.Sprint(val)))
		}
	}

	span.SetAttributes(attributes...)
}

// GetCarrier extracts the trace context of ctx as W3C headers ("traceparent",
// "tracestate", "baggage") ready to be attached to an outgoing record.
//
// Example:
//
//	headers := tr.GetCarrier(ctx)
//	err := client.Publish(ctx, key, value, headers)
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	carrierPropagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext is the complement of GetCarrier: it restores the trace
// context found in carrier (usually the headers of a consumed record) onto ctx.
//
// Example:
//
//	ctx = tr.SetCarrierOnContext(ctx, msg.Header())
//	ctx, span := tr.StartSpan(ctx, "handle-record")
//	defer span.End()
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return carrierPropagator.Extract(ctx, propagation.MapCarrier(carrier))
}
