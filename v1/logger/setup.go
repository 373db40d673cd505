package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient wraps a zap.Logger. Entries always go to stderr so that
// commands can write records to stdout.
type LoggerClient struct {
	// Zap is the underlying zap.Logger instance
	Zap *zap.Logger

	// tracingEnabled adds trace and span ids to the *WithContext methods
	tracingEnabled bool
}

// NewLoggerClient builds the zap logger described by cfg.
//
// Every entry carries the process id and cfg.ServiceName. An unknown level
// selects info and an unknown encoding selects JSON. If zap cannot be built the
// process exits.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{
//	    Level:       logger.Debug,
//	    ServiceName: "kafkalens",
//	    Encoding:    logger.EncodingConsole,
//	})
//	log.Info("consumer started", nil, map[string]interface{}{"topic": "orders"})
func NewLoggerClient(cfg Config) *LoggerClient {
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Encoding:         EncodingJSON,
		EncoderConfig:    encoderConfig(cfg.Encoding),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}
	if cfg.Encoding == EncodingConsole {
		config.Encoding = EncodingConsole
	}

	logger, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &LoggerClient{
		Zap:            logger,
		tracingEnabled: cfg.EnableTracing,
	}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	if encoding == EncodingConsole {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncodeDuration = zapcore.StringDurationEncoder
		return cfg
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	return cfg
}
