package kafka

import (
	"context"
	"sync"
	"time"
)

// Client provides a high-level interface for producing and consuming records.
//
// This interface is implemented by the concrete *KafkaClient type.
type Client interface {
	// Publish serializes value and writes it to the configured topic.
	Publish(ctx context.Context, key string, value []byte, headers ...map[string]string) error

	// Consume delivers records of the configured topic in partition order.
	Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	// ConsumeParallel decodes records with several workers. Ordering across
	// records is not preserved.
	ConsumeParallel(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message

	// GracefulShutdown stops consumers and closes the reader and writer.
	GracefulShutdown()
}

// Message represents a consumed record.
type Message interface {
	// CommitMsg commits the record offset for the consumer group.
	CommitMsg() error

	// Body returns the decoded value: JSON for avro data, the raw value otherwise.
	Body() []byte

	// RawValue returns the value exactly as read from the broker.
	RawValue() []byte

	// Key returns the record key.
	Key() string

	// Header returns the record headers.
	Header() map[string]string

	// SchemaID returns the schema id from the record header, 0 for raw data.
	SchemaID() int32

	// DecodeError returns the error the deserializer reported, if any.
	DecodeError() error

	// Partition returns the partition the record was read from.
	Partition() int

	// Offset returns the record offset.
	Offset() int64

	// Time returns the record timestamp.
	Time() time.Time

	// Context returns parent enriched with the trace context carried in the headers.
	Context(parent context.Context) context.Context
}

var _ Client = (*KafkaClient)(nil)
var _ Message = (*ConsumerMessage)(nil)
