package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/Aleph-Alpha/kafkalens/v1/observability"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// recordWriter is the part of *kafka.Writer used by the client.
type recordWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// recordReader is the part of *kafka.Reader used by the client.
type recordReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaClient publishes and consumes the records of one topic. Values pass
// through its Serializer on the way out and its Deserializer on the way in.
//
// KafkaClient implements the Client interface.
type KafkaClient struct {
	cfg Config

	// logger records client events, may be nil
	logger Logger

	// observer is notified of every publish, fetch and consume
	observer observability.Observer

	// writer is set for producers, reader for consumers
	writer recordWriter
	reader recordReader

	serializer   Serializer
	deserializer Deserializer

	// mu protects writer, reader and the (de)serializers
	mu sync.RWMutex

	// shutdownSignal is closed by GracefulShutdown
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once
}

// NewClient validates cfg and creates a producer, or a consumer when
// cfg.IsConsumer is set. Connections are opened lazily by kafka-go.
//
// Values are passed through unchanged until UseAvro (or SetSerializer and
// SetDeserializer) installs a codec.
//
// Example:
//
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers:    []string{"localhost:9092"},
//		Topic:      "orders",
//		GroupID:    "kafkalens",
//		IsConsumer: true,
//		DataType:   kafka.DataTypeAvro,
//	})
//	if err != nil {
//		return nil, err
//	}
//	client.UseAvro(codec)
//	defer client.GracefulShutdown()
func NewClient(cfg Config) (*KafkaClient, error) {
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	var (
		tlsConfig *tls.Config
		mechanism sasl.Mechanism
		err       error
	)
	if cfg.TLS.Enabled {
		if tlsConfig, err = createTLSConfig(cfg.TLS); err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}
	if cfg.SASL.Enabled {
		if mechanism, err = createSASLMechanism(cfg.SASL); err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	k := &KafkaClient{
		cfg:            cfg,
		logger:         cfg.Logger,
		shutdownSignal: make(chan struct{}),
	}

	if cfg.IsConsumer {
		k.reader = createReader(cfg, tlsConfig, mechanism)
		k.logInfo(context.Background(), "Kafka consumer initialized", map[string]interface{}{
			"topic":    cfg.Topic,
			"group_id": cfg.GroupID,
		})
	} else {
		writer, err := createWriter(cfg, tlsConfig, mechanism)
		if err != nil {
			return nil, err
		}
		k.writer = writer
		k.logInfo(context.Background(), "Kafka producer initialized", map[string]interface{}{
			"topic":       cfg.Topic,
			"compression": cfg.CompressionCodec,
		})
	}

	k.SetDefaultSerializers()
	return k, nil
}

// applyDefaults checks the required fields and fills in every zero value.
func (cfg *Config) applyDefaults() error {
	if len(cfg.Brokers) == 0 {
		return fmt.Errorf("kafka: no brokers configured")
	}
	if cfg.Topic == "" {
		return fmt.Errorf("kafka: no topic configured")
	}
	switch cfg.DataType {
	case "":
		cfg.DataType = DataTypeRaw
	case DataTypeRaw, DataTypeAvro:
	default:
		return fmt.Errorf("kafka: unsupported data type %q", cfg.DataType)
	}

	setDefault(&cfg.MinBytes, DefaultMinBytes)
	setDefault(&cfg.MaxBytes, DefaultMaxBytes)
	setDefault(&cfg.MaxWait, DefaultMaxWait)
	setDefault(&cfg.CommitInterval, DefaultCommitInterval)
	setDefault(&cfg.StartOffset, DefaultStartOffset)
	setDefault(&cfg.Partition, DefaultPartition)
	setDefault(&cfg.RequiredAcks, DefaultRequiredAcks)
	setDefault(&cfg.BatchSize, DefaultBatchSize)
	setDefault(&cfg.BatchTimeout, DefaultBatchTimeout)
	setDefault(&cfg.MaxAttempts, DefaultMaxAttempts)
	setDefault(&cfg.WriteTimeout, DefaultWriteTimeout)
	return nil
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// WithObserver attaches an observer notified of every publish, fetch and
// consume, and returns the client for method chaining.
//
// When using FX, NewClientWithDI injects the observer instead.
func (k *KafkaClient) WithObserver(observer observability.Observer) *KafkaClient {
	k.observer = observer
	return k
}

// WithLogger attaches a logger and returns the client for method chaining.
func (k *KafkaClient) WithLogger(logger Logger) *KafkaClient {
	k.logger = logger
	return k
}

// SetSerializer replaces the serializer used by Publish.
func (k *KafkaClient) SetSerializer(s Serializer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.serializer = s
}

// SetDeserializer replaces the deserializer used by Consume.
func (k *KafkaClient) SetDeserializer(d Deserializer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.deserializer = d
}

// createErrorLogger routes kafka-go internal errors to cfg.Logger, then
// cfg.ErrorLogger, then the standard logger.
func createErrorLogger(cfg Config) kafka.LoggerFunc {
	if cfg.Logger != nil {
		return func(msg string, args ...interface{}) {
			cfg.Logger.Error("Kafka internal error", nil, map[string]interface{}{
				"error": fmt.Sprintf(msg, args...),
				"topic": cfg.Topic,
			})
		}
	}
	if cfg.ErrorLogger != nil {
		return cfg.ErrorLogger
	}
	return func(msg string, args ...interface{}) {
		log.Printf("KAFKA ERROR: "+msg, args...)
	}
}

func compression(codec string) (kafka.Compression, error) {
	switch codec {
	case "", "none":
		return 0, nil
	case "gzip":
		return kafka.Gzip, nil
	case "snappy":
		return kafka.Snappy, nil
	case "lz4":
		return kafka.Lz4, nil
	case "zstd":
		return kafka.Zstd, nil
	default:
		return 0, fmt.Errorf("kafka: unsupported compression codec %q", codec)
	}
}

func createWriter(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism) (*kafka.Writer, error) {
	codec, err := compression(cfg.CompressionCodec)
	if err != nil {
		return nil, err
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		Async:        cfg.Async,
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		Compression:  codec,
		ErrorLogger:  createErrorLogger(cfg),
	}
	if tlsConfig != nil || mechanism != nil {
		w.Transport = &kafka.Transport{
			TLS:  tlsConfig,
			SASL: mechanism,
		}
	}
	return w, nil
}

func createReader(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism) *kafka.Reader {
	readerConfig := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		MaxWait:     cfg.MaxWait,
		StartOffset: cfg.StartOffset,
		ErrorLogger: createErrorLogger(cfg),
		Dialer: &kafka.Dialer{
			TLS:           tlsConfig,
			SASLMechanism: mechanism,
		},
	}

	// commits are explicit; the interval only matters for auto commit
	if cfg.EnableAutoCommit {
		readerConfig.CommitInterval = cfg.CommitInterval
	}

	// kafka-go rejects a partition together with a group
	if cfg.Partition != -1 && cfg.GroupID == "" {
		readerConfig.Partition = cfg.Partition
	}

	return kafka.NewReader(readerConfig)
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
