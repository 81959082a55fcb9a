// Package metrics exposes the Prometheus metrics this proxy collects per
// connection and per query cycle.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds every Prometheus metric the proxy registers.
type Collector struct {
	Registry *prometheus.Registry

	connectionsActive prometheus.Gauge
	connectionsTotal  prometheus.Counter

	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec

	authFailures prometheus.Counter
}

// New creates and registers the proxy's metrics on a dedicated registry.
func New() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		Registry: reg,
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pgproxy_connections_active",
			Help: "Number of client connections currently being served",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pgproxy_connections_total",
			Help: "Total number of client connections accepted",
		}),
		queryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pgproxy_query_duration_seconds",
				Help:    "Duration of one query cycle, by routing path",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"path"},
		),
		queryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pgproxy_query_errors_total",
				Help: "Query cycles that ended in an ErrorResponse, by SQLSTATE",
			},
			[]string{"code"},
		),
		authFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pgproxy_auth_failures_total",
			Help: "Authentication attempts rejected during the startup handshake",
		}),
	}

	reg.MustRegister(
		c.connectionsActive,
		c.connectionsTotal,
		c.queryDuration,
		c.queryErrors,
		c.authFailures,
	)

	return c
}

// ConnectionOpened records a newly accepted client connection.
func (c *Collector) ConnectionOpened() {
	c.connectionsActive.Inc()
	c.connectionsTotal.Inc()
}

// ConnectionClosed records that a client connection has ended.
func (c *Collector) ConnectionClosed() {
	c.connectionsActive.Dec()
}

// QueryDuration observes how long one query cycle took, labeled by whether
// it was served from the catalog emulator or the backend adapter.
func (c *Collector) QueryDuration(path string, d time.Duration) {
	c.queryDuration.WithLabelValues(path).Observe(d.Seconds())
}

// QueryError increments the error counter for the given SQLSTATE code.
func (c *Collector) QueryError(code string) {
	c.queryErrors.WithLabelValues(code).Inc()
}

// AuthFailure increments the authentication failure counter.
func (c *Collector) AuthFailure() {
	c.authFailures.Inc()
}
