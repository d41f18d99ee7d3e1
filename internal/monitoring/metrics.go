package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one process. Each binary owns its own
// registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LeadsTotal      *prometheus.CounterVec
	EmailsTotal     *prometheus.CounterVec
}

func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		Registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests",
				ConstLabels: labels,
			},
			[]string{"method", "route", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "Duration of HTTP requests",
				ConstLabels: labels,
				Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),

		LeadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "leads_captured_total",
				Help:        "Lead-capture submissions stored, by kind",
				ConstLabels: labels,
			},
			[]string{"kind"},
		),

		EmailsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "emails_total",
				Help:        "Transactional emails by outcome (sent, skipped, failed)",
				ConstLabels: labels,
			},
			[]string{"outcome"},
		),
	}

	m.Registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.LeadsTotal,
		m.EmailsTotal,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Lead counts a stored lead. Safe on a nil receiver.
func (m *Metrics) Lead(kind string) {
	if m == nil {
		return
	}
	m.LeadsTotal.WithLabelValues(kind).Inc()
}

// Email counts an email outcome. Safe on a nil receiver.
func (m *Metrics) Email(outcome string) {
	if m == nil {
		return
	}
	m.EmailsTotal.WithLabelValues(outcome).Inc()
}
