package avro

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/kafkalens/v1/observability"
)

// Logger defines the logging operations the codec uses. *logger.LoggerClient
// satisfies it.
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
}

// Codec converts framed Avro records to JSON and back, looking schemas up through
// a SchemaProvider.
//
// Codec holds no per-call state; a single instance may be shared by any number of
// goroutines.
type Codec struct {
	provider SchemaProvider
	logger   Logger
	observer observability.Observer
}

// NewCodec creates a Codec backed by provider.
//
// Example:
//
//	codec := avro.NewCodec(provider)
//	id, text, err := codec.Decode(ctx, msg.Value)
func NewCodec(provider SchemaProvider) *Codec {
	return &Codec{provider: provider}
}

// WithLogger attaches a logger and returns the codec for chaining.
func (c *Codec) WithLogger(l Logger) *Codec {
	c.logger = l
	return c
}

// WithObserver attaches an observer that is notified of every decode and encode.
func (c *Codec) WithObserver(o observability.Observer) *Codec {
	c.observer = o
	return c
}

// Decode reads the schema id from the payload header, fetches that schema and
// converts the record to JSON.
//
// Parameters:
//   - ctx: Context for the schema lookup
//   - payload: The framed record as read from the broker
//
// Returns:
//   - int32: The schema id found in the header
//   - string: The JSON document
//   - error: ErrInvalidHeader, ErrSchemaProvider or any conversion error kind
func (c *Codec) Decode(ctx context.Context, payload []byte) (int32, string, error) {
	start := time.Now()

	id, _, err := ReadHeader(payload)
	if err != nil {
		c.observe("decode", "", start, err, len(payload))
		return 0, "", err
	}

	schema, err := c.provider.SchemaByID(ctx, id)
	if err != nil {
		err = wrapError(ErrSchemaProvider, err, "schema id %d", id)
		c.observe("decode", fmt.Sprint(id), start, err, len(payload))
		return 0, "", err
	}

	_, text, err := Decode(payload, schema)
	c.observe("decode", fmt.Sprint(id), start, err, len(payload))
	if err != nil {
		return 0, "", err
	}
	return id, text, nil
}

// Encode converts a JSON document into a framed record using the latest schema of
// subject.
//
// Parameters:
//   - ctx: Context for the schema lookup
//   - jsonText: The document to encode
//   - subject: The registry subject, conventionally "<topic>-value"
//
// Returns:
//   - []byte: The framed record, ready to publish
//   - error: ErrSchemaProvider or any conversion error kind
func (c *Codec) Encode(ctx context.Context, jsonText, subject string) ([]byte, error) {
	start := time.Now()

	schema, err := c.provider.SchemaBySubject(ctx, subject)
	if err != nil {
		err = wrapError(ErrSchemaProvider, err, "subject %s", subject)
		c.observe("encode", subject, start, err, 0)
		return nil, err
	}

	out, err := Encode(jsonText, schema)
	c.observe("encode", subject, start, err, len(out))
	return out, err
}

func (c *Codec) observe(operation, resource string, start time.Time, err error, size int) {
	duration := time.Since(start)

	if c.logger != nil {
		fields := map[string]interface{}{
			"operation": operation,
			"resource":  resource,
			"duration":  duration,
		}
		if err != nil {
			fields["kind"] = Kind(err)
			c.logger.Debug("avro conversion failed", err, fields)
		} else {
			c.logger.Debug("avro conversion done", nil, fields)
		}
	}

	if c.observer == nil {
		return
	}
	metadata := map[string]interface{}{}
	if err != nil {
		metadata["kind"] = Kind(err)
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: "avro",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Size:      int64(size),
		Metadata:  metadata,
	})
}
