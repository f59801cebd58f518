// Package metrics exposes the Prometheus instrumentation for the API: HTTP
// request counters and latencies plus domain counters for interactions and
// the tier distribution.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles all collectors so they can be registered once and shared.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	InteractionsLogged *prometheus.CounterVec
	ClientsCreated     prometheus.Counter
	ClientsByTier      *prometheus.GaugeVec
}

// New registers the collectors on a registry (the default one when nil).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhi",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rhi",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		InteractionsLogged: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhi",
			Name:      "interactions_logged_total",
			Help:      "Interactions logged by type and disposition.",
		}, []string{"type", "disposition"}),
		ClientsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "rhi",
			Name:      "clients_created_total",
			Help:      "Clients created since start.",
		}),
		ClientsByTier: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "rhi",
			Name:      "clients_by_tier",
			Help:      "Current number of clients per tier.",
		}, []string{"tier"}),
	}
}

// Middleware instruments every request. The route template is used as the
// path label so UUIDs do not explode cardinality.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			m.HTTPRequestsTotal.WithLabelValues(
				c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(
				c.Request().Method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// SetTierCounts updates the tier distribution gauge.
func (m *Metrics) SetTierCounts(green, amber, red int) {
	m.ClientsByTier.WithLabelValues("Green").Set(float64(green))
	m.ClientsByTier.WithLabelValues("Amber").Set(float64(amber))
	m.ClientsByTier.WithLabelValues("Red").Set(float64(red))
}
