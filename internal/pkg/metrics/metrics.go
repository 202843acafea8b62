// Package metrics collects and exposes Prometheus metrics for the
// attendance service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector is used by the service layer to record business events.
type Collector interface {
	RecordSessionStarted()
	RecordSessionEnded()
	RecordWeekOffDays(count int)
	RecordReportGenerated(kind string)
	RecordLogin()
}

type PrometheusCollector struct {
	sessionsStarted  prometheus.Counter
	sessionsEnded    prometheus.Counter
	weekOffDays      prometheus.Counter
	reportsGenerated *prometheus.CounterVec
	logins           prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_sessions_started_total",
			Help: "Total number of work sessions started",
		}),
		sessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_sessions_ended_total",
			Help: "Total number of work sessions ended",
		}),
		weekOffDays: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_week_off_days_total",
			Help: "Total number of week off days marked",
		}),
		reportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendance_reports_generated_total",
			Help: "Total number of reports generated, by kind",
		}, []string{"kind"}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "attendance_logins_total",
			Help: "Total number of successful logins",
		}),
	}

	reg.MustRegister(
		c.sessionsStarted,
		c.sessionsEnded,
		c.weekOffDays,
		c.reportsGenerated,
		c.logins,
	)

	return c
}

func (c *PrometheusCollector) RecordSessionStarted() {
	c.sessionsStarted.Inc()
}

func (c *PrometheusCollector) RecordSessionEnded() {
	c.sessionsEnded.Inc()
}

func (c *PrometheusCollector) RecordWeekOffDays(count int) {
	c.weekOffDays.Add(float64(count))
}

func (c *PrometheusCollector) RecordReportGenerated(kind string) {
	c.reportsGenerated.WithLabelValues(kind).Inc()
}

func (c *PrometheusCollector) RecordLogin() {
	c.logins.Inc()
}

// Handler returns the /metrics endpoint handler for the registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Noop is a Collector that records nothing, for tests.
type Noop struct{}

func (Noop) RecordSessionStarted()             {}
func (Noop) RecordSessionEnded()               {}
func (Noop) RecordWeekOffDays(count int)       {}
func (Noop) RecordReportGenerated(kind string) {}
func (Noop) RecordLogin()                      {}
