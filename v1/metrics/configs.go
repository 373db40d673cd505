package metrics

// DefaultMetricsAddress is the listen address used when Config.Address is empty.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens.
	//
	// Example values:
	//   - ":9090"          → Listen on all interfaces, port 9090
	//   - "127.0.0.1:9100" → Listen only on localhost, port 9100
	//
	// Default: ":9090"
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS" mapstructure:"address"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS" mapstructure:"enable_default_collectors"`

	// Namespace sets a global prefix for all metrics registered by this service.
	//
	// Example:
	//   Namespace: "kafkalens"
	//   → Metric name becomes "kafkalens_operations_total"
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE" mapstructure:"namespace"`

	// ServiceName identifies the service exposing metrics. It is added as the
	// constant label service="<ServiceName>" to every metric.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME" mapstructure:"service_name"`
}
