package cmd

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/kafka"
	"github.com/Aleph-Alpha/kafkalens/v1/logger"
	"github.com/Aleph-Alpha/kafkalens/v1/metrics"
	"github.com/Aleph-Alpha/kafkalens/v1/redis"
	"github.com/Aleph-Alpha/kafkalens/v1/schema_registry"
	"github.com/Aleph-Alpha/kafkalens/v1/tracer"
)

// streamModules wires the registry, codec and kafka client for c, plus
// logging and tracing. The metrics server and the Redis schema store are only
// added when their address is configured.
func streamModules(c Config) fx.Option {
	options := []fx.Option{
		fx.NopLogger,
		fx.Supply(c.Logger, c.Tracer, c.SchemaRegistry, c.Kafka),
		logger.FXModule,
		fx.Provide(
			func(l *logger.LoggerClient) avro.Logger { return l },
			func(l *logger.LoggerClient) schema_registry.Logger { return l },
			func(l *logger.LoggerClient) kafka.Logger { return l },
			func(l *logger.LoggerClient) tracer.Logger { return l },
		),
		tracer.FXModule,
		schema_registry.FXModule,
		avro.FXModule,
		kafka.FXModule,
	}
	if c.Metrics.Address != "" {
		options = append(options, fx.Supply(c.Metrics), metrics.FXModule)
	}
	if c.Redis.Host != "" {
		options = append(options,
			fx.Supply(c.Redis),
			fx.Provide(
				func(l *logger.LoggerClient) redis.Logger { return l },
				func(s *redis.RedisClient) schema_registry.SchemaStore { return s },
			),
			redis.FXModule,
		)
	}
	return fx.Options(options...)
}
