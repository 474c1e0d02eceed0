// Package metrics wraps the Prometheus collectors for dispatched operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records operation counts and latencies. A nil Collector is a no-op.
type Collector struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = "playhub"
	}

	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	c.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "operations_total",
			Help:      "Total number of dispatched operations by outcome code",
		},
		[]string{"operation", "kind", "code"},
	)

	c.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "operation_duration_seconds",
			Help:      "Time taken to run a dispatched operation",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "kind"},
	)

	c.registry.MustRegister(
		c.operationsTotal,
		c.operationDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveOperation records one dispatch. code is "OK" on success.
func (c *Collector) ObserveOperation(operation, kind, code string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.operationsTotal.WithLabelValues(operation, kind, code).Inc()
	c.operationDuration.WithLabelValues(operation, kind).Observe(elapsed.Seconds())
}

// OperationsTotal exposes the operation counter
func (c *Collector) OperationsTotal() *prometheus.CounterVec {
	return c.operationsTotal
}

// Registry returns the underlying Prometheus registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
