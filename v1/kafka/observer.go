package kafka

import (
	"context"
	"time"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track publish and consume operations for metrics.
func (k *KafkaClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if k.observer == nil {
		return
	}
	if err != nil {
		if kind := avro.Kind(err); kind != "" {
			if metadata == nil {
				metadata = map[string]interface{}{}
			}
			metadata["kind"] = kind
		}
	}
	k.observer.ObserveOperation(observability.OperationContext{
		Component:   "kafka",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}

func (k *KafkaClient) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if k.logger != nil {
		k.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (k *KafkaClient) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if k.logger != nil {
		k.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

func (k *KafkaClient) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if k.logger != nil {
		k.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
