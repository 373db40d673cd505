package tracer

// Config defines the configuration for the OpenTelemetry tracer.
type Config struct {
	// ServiceName is reported as the service.name resource attribute.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME" mapstructure:"service_name"`

	// AppEnv is reported as deployment.environment.
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV" mapstructure:"app_env"`

	// EnableExport turns on the OTLP HTTP exporter. Without it spans are created
	// and propagated but never leave the process.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT" mapstructure:"enable_export"`

	// Endpoint is the full OTLP traces URL, e.g. http://collector:4318/v1/traces.
	// When empty the exporter falls back to the OTEL_EXPORTER_OTLP_* environment.
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT" mapstructure:"endpoint"`
}
