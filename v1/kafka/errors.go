package kafka

import "errors"

var (
	// ErrNoWriter is returned by Publish on a client configured as consumer.
	ErrNoWriter = errors.New("kafka client has no writer")

	// ErrNoReader is returned when consuming from a client configured as producer.
	ErrNoReader = errors.New("kafka client has no reader")

	// ErrSerialize wraps serializer failures in Publish.
	ErrSerialize = errors.New("serialize failed")

	// ErrDeserialize wraps deserializer failures.
	ErrDeserialize = errors.New("deserialize failed")

	// ErrPublishFailed wraps broker write failures.
	ErrPublishFailed = errors.New("publish failed")

	// ErrCommitFailed wraps offset commit failures.
	ErrCommitFailed = errors.New("commit failed")
)
