// Package tracer provides distributed tracing functionality using OpenTelemetry.
//
// The tracer package wraps the OpenTelemetry SDK behind a small API for creating
// spans and carrying trace context across Kafka records. The kafka package uses
// GetCarrier when publishing and SetCarrierOnContext when consuming, so a
// record produced by one service continues the trace in the service decoding it.
//
// Core Features:
//   - Span creation with error recording and attributes
//   - W3C trace context and baggage propagation through string maps
//   - Optional OTLP HTTP export
//   - Integration with logger trace fields (trace_id, span_id)
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/kafkalens/v1/tracer"
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "kafkalens",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(context.Background())
//
//	ctx, span := tr.StartSpan(ctx, "avro.encode")
//	defer span.End()
//
//	tr.SetAttributes(span, map[string]interface{}{"avro.subject": "orders-value"})
//
// Propagation Through Records:
//
//	// producer side
//	headers := tr.GetCarrier(ctx)
//	err := client.Publish(ctx, key, value, headers)
//
//	// consumer side
//	ctx := tr.SetCarrierOnContext(context.Background(), msg.Header())
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		fx.Provide(func() tracer.Config { return tracer.Config{ServiceName: "kafkalens"} }),
//	)
//
// Configuration:
//
//	TRACER_SERVICE_NAME=kafkalens
//	TRACER_APP_ENV=production
//	TRACER_ENABLE_EXPORT=true
//	TRACER_ENDPOINT=http://otel-collector:4318/v1/traces
//
// Thread Safety:
//
// All methods on the Tracer type are safe for concurrent use by multiple goroutines.
package tracer
