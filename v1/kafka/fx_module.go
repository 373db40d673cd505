package kafka

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/observability"
)

// FXModule is an fx.Module that provides and configures the Kafka client.
// This module registers the Kafka client with the Fx dependency injection framework
// and closes it when the application stops.
//
// The module:
// 1. Provides *KafkaClient built from Config, with optional Logger, Observer and avro.Codec
// 2. Exposes it as the Client interface
// 3. Invokes the lifecycle registration to shut the client down gracefully
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    schema_registry.FXModule,
//	    avro.FXModule,
//	    kafka.FXModule,
//	    fx.Provide(func() kafka.Config {
//	        return kafka.Config{
//	            Brokers:    []string{"localhost:9092"},
//	            Topic:      "orders",
//	            GroupID:    "kafkalens",
//	            IsConsumer: true,
//	            DataType:   kafka.DataTypeAvro,
//	        }
//	    }),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI,
		func(k *KafkaClient) Client { return k },
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka client
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Codec    *avro.Codec            `optional:"true"`
}

// NewClientWithDI creates a new Kafka client using dependency injection.
// The optional logger and observer are injected, and with DataTypeAvro the
// client is wired to the codec found in the container.
//
// Returns an error when DataTypeAvro is configured but no codec is available.
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	cfg := params.Config
	if cfg.Logger == nil && params.Logger != nil {
		cfg.Logger = params.Logger
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}

	if client.cfg.DataType == DataTypeAvro {
		if params.Codec == nil {
			client.GracefulShutdown()
			return nil, fmt.Errorf("kafka: data type %q requires an avro codec", DataTypeAvro)
		}
		client.UseAvro(params.Codec)
	}

	return client, nil
}

// KafkaLifecycleParams groups the dependencies needed for Kafka lifecycle management
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle registers an OnStop hook that shuts the client down,
// stopping running consumers and flushing the writer.
//
// This function is automatically invoked by the FXModule.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Client.GracefulShutdown()
			return nil
		},
	})
}

// GracefulShutdown closes the Kafka client cleanly.
//
// The shutdown process:
// 1. Signals all consumer goroutines to stop by closing the shutdownSignal channel
// 2. Closes the writer, flushing pending async writes
// 3. Closes the reader, which unblocks pending fetches
//
// Errors are logged and not returned. Calling it more than once is safe.
func (k *KafkaClient) GracefulShutdown() {
	k.closeShutdownOnce.Do(func() {
		close(k.shutdownSignal)
	})

	k.mu.Lock()
	defer k.mu.Unlock()

	k.logInfo(context.Background(), "Shutting down Kafka client", map[string]interface{}{
		"topic": k.cfg.Topic,
	})

	if k.writer != nil {
		if err := k.writer.Close(); err != nil {
			k.logWarn(context.Background(), "Failed to close kafka writer", err, nil)
		}
		k.writer = nil
	}
	if k.reader != nil {
		if err := k.reader.Close(); err != nil {
			k.logWarn(context.Background(), "Failed to close kafka reader", err, nil)
		}
		k.reader = nil
	}
}
