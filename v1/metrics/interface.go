package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides an interface for collecting and exposing application metrics.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// Default metric methods

	// IncrementOperations counts a finished operation of a component.
	IncrementOperations(component, operation, status, kind string)

	// RecordOperationDuration records the duration (in seconds) of an operation.
	RecordOperationDuration(start time.Time, component, operation string)

	// ObserveDuration records an already measured operation duration.
	ObserveDuration(d time.Duration, component, operation string)

	// ObservePayloadSize records the size in bytes of a processed record.
	ObservePayloadSize(size int64, component, operation string)

	// ObserveConsumerLag sets the lag gauge of a topic partition.
	ObserveConsumerLag(value float64, topic, partition string)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
