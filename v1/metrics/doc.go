// Package metrics provides Prometheus-based monitoring for kafkalens.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - ObserverAdapter: Feeds observability.Observer notifications into the metrics
//   - FX module: Provides *Metrics, MetricsCollector and an observability.Observer
//
// Core Features:
//   - Exposes a configurable /metrics endpoint for Prometheus scraping
//   - Operation counters by component, operation, status and error kind
//   - Operation latency and payload size histograms
//   - Consumer lag gauge per topic partition
//   - Automatic registration of Go runtime and process-level metrics
//   - Graceful startup and shutdown via Fx lifecycle hooks
//
// # Direct Usage (Without FX)
//
//	import "github.com/Aleph-Alpha/kafkalens/v1/metrics"
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		Namespace:               "kafkalens",
//		EnableDefaultCollectors: true,
//		ServiceName:             "kafkalens",
//	})
//	go m.Server.ListenAndServe()
//
//	codec := avro.NewCodec(provider).WithObserver(metrics.NewObserverAdapter(m))
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		schema_registry.FXModule,
//		avro.FXModule, // picks up the observer provided by metrics.FXModule
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", ServiceName: "kafkalens"}
//		}),
//	)
//
// # Configuration
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_NAMESPACE=kafkalens                # Optional prefix for all metric names
//	METRICS_SERVICE_NAME=kafkalens             # Adds service label to all metrics
//
// # Series
//
//	<ns>_operations_total{component, operation, status, kind}
//	<ns>_operation_duration_seconds{component, operation}
//	<ns>_payload_size_bytes{component, operation}
//	<ns>_consumer_lag{topic, partition}
//
// kind is the error kind reported by the component (for the codec one of the
// avro.Kind labels such as "invalid_union"), empty on success.
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
