// Package metrics provides Prometheus collectors for the gateway.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetrics is safe to use as a nil pointer; every method is then a no-op.
type GatewayMetrics struct {
	requestsTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	publishErrors    prometheus.Counter
}

// NewGatewayMetrics creates the collectors and registers them on registry.
func NewGatewayMetrics(registry prometheus.Registerer) (*GatewayMetrics, error) {
	m := &GatewayMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "weathervista",
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Total number of proxied weather requests by endpoint and response status",
			},
			[]string{"endpoint", "status"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "weathervista",
				Subsystem: "gateway",
				Name:      "upstream_duration_seconds",
				Help:      "Time taken by the upstream weather provider",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
			},
			[]string{"endpoint"},
		),
		publishErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "weathervista",
				Subsystem: "gateway",
				Name:      "lookup_publish_errors_total",
				Help:      "Lookup events that could not be published",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.requestsTotal, m.upstreamDuration, m.publishErrors} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *GatewayMetrics) RecordRequest(endpoint string, status int) {
	if m == nil {
		return
	}
	if endpoint == "" {
		endpoint = "invalid"
	}
	m.requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

func (m *GatewayMetrics) RecordUpstreamDuration(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(endpoint).Observe(seconds)
}

func (m *GatewayMetrics) RecordPublishError() {
	if m == nil {
		return
	}
	m.publishErrors.Inc()
}
