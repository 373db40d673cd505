// Package kafka provides a Kafka producer and consumer that speak the
// Confluent Avro wire format.
//
// The client wraps segmentio/kafka-go. Values go through a Serializer on publish
// and a Deserializer on consume. With DataTypeAvro these are backed by an
// avro.Codec: published JSON documents are encoded with the latest schema of the
// configured subject, and consumed records are decoded to JSON with the schema
// named in their header.
//
// Core Features:
//   - Producer with compression, TLS and SASL (PLAIN, SCRAM-SHA-256/512)
//   - Consumer groups with manual or automatic commits
//   - Parallel decoding workers
//   - Undecodable records delivered with their error, or skipped
//   - Trace context propagated through record headers
//   - Observer notifications with per-partition consumer lag
//
// Basic Usage:
//
//	import (
//		"github.com/Aleph-Alpha/kafkalens/v1/avro"
//		"github.com/Aleph-Alpha/kafkalens/v1/kafka"
//	)
//
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers:  []string{"localhost:9092"},
//		Topic:    "orders",
//		DataType: kafka.DataTypeAvro,
//	})
//	if err != nil {
//		return err
//	}
//	client.UseAvro(codec)
//	defer client.GracefulShutdown()
//
//	// Publish a JSON document, encoded with the latest "orders-value" schema
//	err = client.Publish(ctx, "order-1", []byte(`{"id": "1", "amount": "12.30"}`))
//
// Consuming:
//
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	for msg := range client.Consume(ctx, wg) {
//		if err := msg.DecodeError(); err != nil {
//			log.Warn("undecodable record", err, map[string]interface{}{
//				"offset": msg.Offset(),
//			})
//			continue
//		}
//		fmt.Println(string(msg.Body()))
//
//		if err := msg.CommitMsg(); err != nil {
//			log.Error("Failed to commit message", err, nil)
//		}
//	}
//
// High-Throughput Consumption with Parallel Workers:
//
// ConsumeParallel decodes records with several workers. Records may be delivered
// out of order.
//
//	msgChan := client.ConsumeParallel(ctx, wg, 5)
//	for msg := range msgChan {
//		processMessage(msg)
//		_ = msg.CommitMsg()
//	}
//
// Distributed Tracing with Message Headers:
//
// Publish adds the trace context of its ctx to the record headers using the
// global OpenTelemetry propagator (installed by tracer.NewClient). On the
// consumer side msg.Context restores it:
//
//	for msg := range client.Consume(ctx, wg) {
//		msgCtx, span := tracerClient.StartSpan(msg.Context(ctx), "process-record")
//		process(msgCtx, msg)
//		span.End()
//	}
//
// FX Module Integration:
//
//	app := fx.New(
//		schema_registry.FXModule,
//		avro.FXModule,
//		kafka.FXModule, // uses the avro.Codec when DataType is "avro"
//		fx.Provide(func() kafka.Config {
//			return kafka.Config{
//				Brokers:    []string{"localhost:9092"},
//				Topic:      "orders",
//				GroupID:    "kafkalens",
//				IsConsumer: true,
//				DataType:   kafka.DataTypeAvro,
//			}
//		}),
//	)
//
// Observability:
//
// With an observer attached, the client reports:
//   - publish: Resource=topic, Size=encoded bytes
//   - consume: Resource=topic, SubResource=partition, Metadata["lag"]
//   - fetch: broker fetch failures
//
// Failed operations carry Metadata["kind"] with the avro error kind.
//
// Thread Safety:
//
// Publish is safe for concurrent use. Consume and ConsumeParallel may be called
// once per client; the returned channel closes when the context is cancelled or
// GracefulShutdown is called.
package kafka
