package kafka

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Publish serializes value and writes it to the configured topic.
//
// With DataTypeAvro, value is a JSON document encoded with the latest schema of
// the configured subject. The trace context of ctx is added to the record
// headers unless the caller already set "traceparent".
//
// Parameters:
//   - ctx: Context for cancellation and trace propagation
//   - key: The record key, empty for none
//   - value: The record value before serialization
//   - headers: Optional record headers, merged in order
//
// Returns an error wrapping ErrSerialize, ErrPublishFailed or ErrNoWriter.
//
// Example:
//
//	err := client.Publish(ctx, "order-1", []byte(`{"id":"1","amount":"12.30"}`))
//	if avro.IsMissingField(err) {
//	    // the document does not match the latest schema
//	}
func (k *KafkaClient) Publish(ctx context.Context, key string, value []byte, headers ...map[string]string) error {
	start := time.Now()

	k.mu.RLock()
	writer, serializer := k.writer, k.serializer
	k.mu.RUnlock()

	if writer == nil {
		return ErrNoWriter
	}

	payload, err := serializer.Serialize(ctx, value)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSerialize, err)
		k.observeOperation("publish", k.cfg.Topic, "", time.Since(start), err, int64(len(value)), nil)
		return err
	}

	msg := kafka.Message{
		Value:   payload,
		Headers: buildHeaders(ctx, headers...),
	}
	if key != "" {
		msg.Key = []byte(key)
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		err = fmt.Errorf("%w: %w", ErrPublishFailed, err)
		k.logError(ctx, "Failed to publish record", err, map[string]interface{}{
			"topic": k.cfg.Topic,
		})
		k.observeOperation("publish", k.cfg.Topic, "", time.Since(start), err, int64(len(payload)), nil)
		return err
	}

	k.observeOperation("publish", k.cfg.Topic, "", time.Since(start), nil, int64(len(payload)), nil)
	return nil
}

// buildHeaders merges the given header maps and adds the trace context of ctx.
func buildHeaders(ctx context.Context, headers ...map[string]string) []kafka.Header {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		for k, v := range h {
			carrier[k] = v
		}
	}
	if _, ok := carrier["traceparent"]; !ok {
		otel.GetTextMapPropagator().Inject(ctx, carrier)
	}

	if len(carrier) == 0 {
		return nil
	}
	keys := carrier.Keys()
	sort.Strings(keys)
	out := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		out = append(out, kafka.Header{Key: k, Value: []byte(carrier[k])})
	}
	return out
}
