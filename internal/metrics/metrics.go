// Package metrics exposes HTTP and workflow counters for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Workflow events counted by Record.
const (
	EventRegistrationSubmitted = "registration_submitted"
	EventRegistrationApproved  = "registration_approved"
	EventCredentialsCreated    = "credentials_created"
	EventLoginSucceeded        = "login_succeeded"
	EventLoginFailed           = "login_failed"
	EventCauseRequestSubmitted = "cause_request_submitted"
	EventCausePublished        = "cause_published"
	EventEmailFailed           = "identifier_email_failed"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	workflowEvents      *prometheus.CounterVec
}

// New registers every collector with reg. Passing a fresh
// prometheus.NewRegistry keeps tests isolated.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		workflowEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "impactecho_workflow_events_total",
				Help: "Onboarding and approval workflow events.",
			},
			[]string{"event"},
		),
	}
	reg.MustRegister(m.httpInFlight, m.httpRequestsTotal, m.httpRequestDuration, m.workflowEvents)
	return m
}

// Record counts one workflow event. A nil Metrics records nothing.
func (m *Metrics) Record(event string) {
	if m == nil {
		return
	}
	m.workflowEvents.WithLabelValues(event).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Instrument measures requests. route names the matched route so ids in
// paths do not explode label cardinality.
func (m *Metrics) Instrument(route func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.httpInFlight.Inc()
			defer m.httpInFlight.Dec()
			start := time.Now()

			sw := &StatusWriter{ResponseWriter: w, Code: http.StatusOK}
			next.ServeHTTP(sw, r)

			status := strconv.Itoa(sw.Code)
			name := route(r)
			m.httpRequestDuration.WithLabelValues(r.Method, name, status).Observe(time.Since(start).Seconds())
			m.httpRequestsTotal.WithLabelValues(r.Method, name, status).Inc()
		})
	}
}

// StatusWriter remembers the response code.
type StatusWriter struct {
	http.ResponseWriter
	Code int
}

func (w *StatusWriter) WriteHeader(code int) {
	w.Code = code
	w.ResponseWriter.WriteHeader(code)
}
