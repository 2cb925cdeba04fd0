// Package metrics exposes lending activity and HTTP traffic as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/booklending/internal/lending"
)

const namespace = "booklending"

// Metrics owns its registry so tests and multiple engines never share counters.
type Metrics struct {
	registry *prometheus.Registry

	events       *prometheus.CounterVec
	finesTotal   prometheus.Counter
	lateReturns  prometheus.Counter
	httpRequests *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_events_total",
			Help:      "Committed borrowing lifecycle events by kind.",
		}, []string{"kind"}),
		finesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fines_assessed_total",
			Help:      "Sum of fines assessed on return, in currency minor units.",
		}),
		lateReturns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "late_returns_total",
			Help:      "Returns that carried a fine.",
		}),
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.events,
		m.finesTotal,
		m.lateReturns,
		m.httpRequests,
	)
	return m
}

// Emit counts a lifecycle event. It never fails, so it is safe to put in
// front of slower notifiers.
func (m *Metrics) Emit(_ context.Context, event lending.Event) error {
	m.events.WithLabelValues(string(event.Kind)).Inc()
	if event.Kind == lending.EventBookReturned && event.Payload.FineAmount > 0 {
		m.finesTotal.Add(float64(event.Payload.FineAmount))
		m.lateReturns.Inc()
	}
	return nil
}

// GinMiddleware records request latency. Unmatched routes share one label.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
