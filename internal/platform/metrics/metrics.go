// Package metrics holds the Prometheus collectors for the HTTP surface, the
// appointment lifecycle and the connection pool.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple servers never clash
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	bookings      *prometheus.CounterVec
	cancellations prometheus.Counter
	reschedules   *prometheus.CounterVec
}

// New creates and registers every collector, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "citas_bookings_total",
				Help: "Booking attempts by result",
			},
			[]string{"result"},
		),
		cancellations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "citas_cancellations_total",
			Help: "Appointments cancelled",
		}),
		reschedules: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "citas_reschedules_total",
				Help: "Reschedule attempts by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.bookings,
		m.cancellations,
		m.reschedules,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency by route template, so
// /api/citas/cancelar/:id is one series regardless of the id.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// ObserveBooking counts a booking attempt by result label.
func (m *Metrics) ObserveBooking(result string) {
	m.bookings.WithLabelValues(result).Inc()
}

// ObserveCancellation counts a successful cancellation.
func (m *Metrics) ObserveCancellation() {
	m.cancellations.Inc()
}

// ObserveReschedule counts a reschedule attempt.
func (m *Metrics) ObserveReschedule(result string) {
	m.reschedules.WithLabelValues(result).Inc()
}

// PoolSnapshot is the subset of pool statistics exported as gauges.
type PoolSnapshot struct {
	Total    int32
	Idle     int32
	Acquired int32
	Max      int32
}

// TrackPool exports connection pool gauges read from snapshot at scrape time.
func (m *Metrics) TrackPool(snapshot func() PoolSnapshot) {
	gauge := func(name, help string, pick func(PoolSnapshot) int32) prometheus.Collector {
		return prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: name, Help: help},
			func() float64 { return float64(pick(snapshot())) },
		)
	}
	m.registry.MustRegister(
		gauge("citas_db_pool_total_conns", "Open connections in the pool", func(s PoolSnapshot) int32 { return s.Total }),
		gauge("citas_db_pool_idle_conns", "Idle connections in the pool", func(s PoolSnapshot) int32 { return s.Idle }),
		gauge("citas_db_pool_acquired_conns", "Connections currently in use", func(s PoolSnapshot) int32 { return s.Acquired }),
		gauge("citas_db_pool_max_conns", "Configured pool ceiling", func(s PoolSnapshot) int32 { return s.Max }),
	)
}
