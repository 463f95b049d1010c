// Package metrics exposes prometheus collectors for scheduling activity.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mediconnect"

type Metrics struct {
	registry *prometheus.Registry

	bookings      *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	cascadeRows   *prometheus.CounterVec
	notifications *prometheus.CounterVec
	sweepRows     *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "transitions_total",
			Help:      "Appointment status transitions",
		}, []string{"to"}),
		cascadeRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cascade",
			Name:      "appointments_total",
			Help:      "Appointments handled by the off-day cascade",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notification",
			Name:      "sent_total",
			Help:      "Outbound notifications by kind, channel and status",
		}, []string{"kind", "channel", "status"}),
		sweepRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sweep",
			Name:      "rows_total",
			Help:      "Rows visited by sweeps",
		}, []string{"sweep", "result"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.bookings,
		m.transitions,
		m.cascadeRows,
		m.notifications,
		m.sweepRows,
		m.httpLatency,
	)

	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveTransition(to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to).Inc()
}

func (m *Metrics) ObserveCascade(flagged, notified, failed int) {
	if m == nil {
		return
	}
	m.cascadeRows.WithLabelValues("flagged").Add(float64(flagged))
	m.cascadeRows.WithLabelValues("notified").Add(float64(notified))
	m.cascadeRows.WithLabelValues("failed").Add(float64(failed))
}

func (m *Metrics) ObserveNotification(kind, channel string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.notifications.WithLabelValues(kind, channel, status).Inc()
}

func (m *Metrics) ObserveSweep(name string, updated, failed int) {
	if m == nil {
		return
	}
	m.sweepRows.WithLabelValues(name, "updated").Add(float64(updated))
	m.sweepRows.WithLabelValues(name, "failed").Add(float64(failed))
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
