package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	// DefaultMinBytes is the minimum batch size the broker should return for a fetch.
	DefaultMinBytes = 1

	// DefaultMaxBytes is the maximum batch size the broker returns for a fetch (10MB).
	DefaultMaxBytes = 10e6

	// DefaultMaxWait bounds how long a fetch waits for MinBytes to accumulate.
	DefaultMaxWait = 500 * time.Millisecond

	// DefaultCommitInterval is the flush interval of asynchronous commits when
	// EnableAutoCommit is set.
	DefaultCommitInterval = time.Second

	// DefaultStartOffset makes a new consumer group start at the oldest record.
	DefaultStartOffset = kafka.FirstOffset

	// DefaultPartition means "no explicit partition": group members get
	// partitions assigned, standalone readers read partition 0.
	DefaultPartition = -1

	// DefaultRequiredAcks waits for all in-sync replicas.
	DefaultRequiredAcks = int(kafka.RequireAll)

	// DefaultBatchSize is the async writer batch size.
	DefaultBatchSize = 100

	// DefaultBatchTimeout is the async writer flush interval.
	DefaultBatchTimeout = 10 * time.Millisecond

	// DefaultMaxAttempts is the number of write attempts before giving up.
	DefaultMaxAttempts = 3

	// DefaultWriteTimeout bounds a single write.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultConsumeBuffer is the capacity of the channel returned by Consume.
	DefaultConsumeBuffer = 100
)

const (
	// DataTypeRaw passes record values through unchanged.
	DataTypeRaw = "raw"

	// DataTypeAvro frames values with the Confluent header and converts them
	// between Avro binary and JSON through an avro.Codec.
	DataTypeAvro = "avro"
)

// Logger is the logging contract of the kafka package. *logger.LoggerClient
// satisfies it.
type Logger interface {
	Error(msg string, err error, fields ...map[string]interface{})
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Config defines the configuration of a Kafka client. A client is either a
// producer or a consumer, selected by IsConsumer.
type Config struct {
	// Brokers is the list of bootstrap brokers, e.g. ["localhost:9092"]
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS" mapstructure:"brokers"`

	// Topic is the topic to publish to or consume from
	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC" mapstructure:"topic"`

	// GroupID is the consumer group. Without it the reader consumes a single
	// partition and commits are unavailable.
	GroupID string `yaml:"group_id" envconfig:"KAFKA_GROUP_ID" mapstructure:"group_id"`

	// IsConsumer creates a reader instead of a writer
	IsConsumer bool `yaml:"is_consumer" envconfig:"KAFKA_IS_CONSUMER" mapstructure:"is_consumer"`

	// DataType selects the default value codec: "raw" (default) or "avro"
	DataType string `yaml:"data_type" envconfig:"KAFKA_DATA_TYPE" mapstructure:"data_type"`

	// Subject is the registry subject used to encode published values.
	// Defaults to "<Topic>-value".
	Subject string `yaml:"subject" envconfig:"KAFKA_SUBJECT" mapstructure:"subject"`

	// SkipUndecodable drops records whose value cannot be decoded instead of
	// delivering them with Message.DecodeError set. Skipped records are
	// committed so they are not redelivered.
	SkipUndecodable bool `yaml:"skip_undecodable" envconfig:"KAFKA_SKIP_UNDECODABLE" mapstructure:"skip_undecodable"`

	// Consumer settings

	MinBytes         int           `yaml:"min_bytes" envconfig:"KAFKA_MIN_BYTES" mapstructure:"min_bytes"`
	MaxBytes         int           `yaml:"max_bytes" envconfig:"KAFKA_MAX_BYTES" mapstructure:"max_bytes"`
	MaxWait          time.Duration `yaml:"max_wait" envconfig:"KAFKA_MAX_WAIT" mapstructure:"max_wait"`
	CommitInterval   time.Duration `yaml:"commit_interval" envconfig:"KAFKA_COMMIT_INTERVAL" mapstructure:"commit_interval"`
	StartOffset      int64         `yaml:"start_offset" envconfig:"KAFKA_START_OFFSET" mapstructure:"start_offset"`
	Partition        int           `yaml:"partition" envconfig:"KAFKA_PARTITION" mapstructure:"partition"`
	EnableAutoCommit bool          `yaml:"enable_auto_commit" envconfig:"KAFKA_ENABLE_AUTO_COMMIT" mapstructure:"enable_auto_commit"`

	// Producer settings

	RequiredAcks     int           `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS" mapstructure:"required_acks"`
	Async            bool          `yaml:"async" envconfig:"KAFKA_ASYNC" mapstructure:"async"`
	BatchSize        int           `yaml:"batch_size" envconfig:"KAFKA_BATCH_SIZE" mapstructure:"batch_size"`
	BatchTimeout     time.Duration `yaml:"batch_timeout" envconfig:"KAFKA_BATCH_TIMEOUT" mapstructure:"batch_timeout"`
	MaxAttempts      int           `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS" mapstructure:"max_attempts"`
	WriteTimeout     time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT" mapstructure:"write_timeout"`
	CompressionCodec string        `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC" mapstructure:"compression_codec"`

	// TLS configures transport encryption
	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`

	// SASL configures authentication
	SASL SASLConfig `yaml:"sasl" mapstructure:"sasl"`

	// Logger receives client and kafka-go internal errors
	Logger Logger `yaml:"-" mapstructure:"-"`

	// ErrorLogger is used for kafka-go internal errors when Logger is nil
	ErrorLogger func(msg string, args ...interface{}) `yaml:"-" mapstructure:"-"`
}

// TLSConfig holds the certificate settings for broker connections.
type TLSConfig struct {
	Enabled            bool   `yaml:"enabled" envconfig:"KAFKA_TLS_ENABLED" mapstructure:"enabled"`
	CACertPath         string `yaml:"ca_cert_path" envconfig:"KAFKA_TLS_CA_CERT_PATH" mapstructure:"ca_cert_path"`
	ClientCertPath     string `yaml:"client_cert_path" envconfig:"KAFKA_TLS_CLIENT_CERT_PATH" mapstructure:"client_cert_path"`
	ClientKeyPath      string `yaml:"client_key_path" envconfig:"KAFKA_TLS_CLIENT_KEY_PATH" mapstructure:"client_key_path"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" envconfig:"KAFKA_TLS_INSECURE_SKIP_VERIFY" mapstructure:"insecure_skip_verify"`
}

// SASLConfig holds the SASL authentication settings.
type SASLConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"KAFKA_SASL_ENABLED" mapstructure:"enabled"`

	// Mechanism is one of PLAIN, SCRAM-SHA-256, SCRAM-SHA-512
	Mechanism string `yaml:"mechanism" envconfig:"KAFKA_SASL_MECHANISM" mapstructure:"mechanism"`
	Username  string `yaml:"username" envconfig:"KAFKA_SASL_USERNAME" mapstructure:"username"`
	Password  string `yaml:"password" envconfig:"KAFKA_SASL_PASSWORD" mapstructure:"password"`
}

// subject returns the registry subject values are encoded with.
func (c Config) subject() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.Topic + "-value"
}
