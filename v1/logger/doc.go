// Package logger provides structured logging for kafkalens on top of zap.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - Logger interface: Defines the contract for logging operations
//   - LoggerClient struct: Concrete implementation of the Logger interface
//   - NewLoggerClient constructor: Returns *LoggerClient (concrete type)
//   - FX module: Provides both *LoggerClient and Logger interface for dependency injection
//
// The avro, schema_registry, kafka and tracer packages each declare the small
// subset of methods they log with. *LoggerClient satisfies all of them.
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Debug, Info, Warn, Error and Fatal levels
//   - trace_id and span_id taken from the OpenTelemetry span in ctx
//   - JSON output on stderr, keeping stdout free for CLI output
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/kafkalens/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		EnableTracing: true,
//	})
//
//	log.Info("schema registered", nil, map[string]interface{}{
//		"subject": "orders-value",
//		"id":      42,
//	})
//
//	// includes trace_id and span_id when ctx carries a span
//	log.WarnWithContext(ctx, "undecodable record", err, map[string]interface{}{
//		"offset": 17,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(
//			func() logger.Config { return logger.Config{Level: "info", ServiceName: "kafkalens"} },
//			func(l *logger.LoggerClient) avro.Logger { return l },
//			func(l *logger.LoggerClient) kafka.Logger { return l },
//		),
//	)
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME=kafkalens   # Added as "service" to every entry
//	LOGGER_ENABLE_TRACING=true      # Add trace_id and span_id from ctx
//
// # Thread Safety
//
// All methods on the Logger interface are safe for concurrent use by multiple
// goroutines.
package logger
