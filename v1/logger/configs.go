package logger

import "context"

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Entry encodings accepted by Config.Encoding.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// Config defines the configuration of the logger.
type Config struct {
	// Level is one of "debug", "info", "warning" or "error".
	// Anything else selects "info".
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL" mapstructure:"level"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME" mapstructure:"service_name"`

	// Encoding is "json" for machine readable entries or "console" for
	// terminals. Default: "json"
	Encoding string `yaml:"encoding" envconfig:"LOGGER_ENCODING" mapstructure:"encoding"`

	// EnableTracing adds trace_id and span_id from the OpenTelemetry span in the
	// context to entries written through the *WithContext methods.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING" mapstructure:"enable_tracing"`
}

// Logger defines the logging contract implemented by *LoggerClient.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})

	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
