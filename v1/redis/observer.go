package redis

import (
	"time"

	"github.com/Aleph-Alpha/kafkalens/v1/observability"
)

// observeOperation notifies the observer about a store operation if one is configured.
//
// Notes:
//   - resource: the schema id
//   - metadata: "cache" is "hit" or "miss" for lookups
func (r *RedisClient) observeOperation(operation, resource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if r == nil || r.observer == nil {
		return
	}

	r.observer.ObserveOperation(observability.OperationContext{
		Component: "redis",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Size:      size,
		Metadata:  metadata,
	})
}
