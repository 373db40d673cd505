package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementOperations counts a finished operation.
// Example: metrics.IncrementOperations("avro", "decode", "error", "invalid_union")
func (m *Metrics) IncrementOperations(component, operation, status, kind string) {
	m.operationsTotal.WithLabelValues(component, operation, status, kind).Inc()
}

// RecordOperationDuration records the duration (in seconds) of an operation.
// Example: defer metrics.RecordOperationDuration(time.Now(), "kafka", "publish")
func (m *Metrics) RecordOperationDuration(start time.Time, component, operation string) {
	m.ObserveDuration(time.Since(start), component, operation)
}

// ObserveDuration records an already measured operation duration.
func (m *Metrics) ObserveDuration(d time.Duration, component, operation string) {
	m.operationDuration.WithLabelValues(component, operation).Observe(d.Seconds())
}

// ObservePayloadSize records the size of a processed record.
func (m *Metrics) ObservePayloadSize(size int64, component, operation string) {
	m.payloadSize.WithLabelValues(component, operation).Observe(float64(size))
}

// ObserveConsumerLag sets the lag gauge of a topic partition.
// Example: metrics.ObserveConsumerLag(12, "orders", "3")
func (m *Metrics) ObserveConsumerLag(value float64, topic, partition string) {
	m.consumerLag.WithLabelValues(topic, partition).Set(value)
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec.
func createGaugeVec(namespace, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}
