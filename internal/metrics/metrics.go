// Package metrics exposes Prometheus instruments for validation outcomes and
// HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

type Metrics struct {
	validationsTotal *prometheus.CounterVec
	formChangesTotal *prometheus.CounterVec
	formsOpen        prometheus.Gauge
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

// NewMetrics registers all instruments with reg, or with the default
// registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "fieldguard_validations_total", Help: "Total field validations"},
			[]string{"policy", "result"},
		),
		formChangesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "fieldguard_form_changes_total", Help: "Total form field changes by policy"},
			[]string{"policy", "result"},
		),
		formsOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{Name: "fieldguard_forms_open", Help: "Forms currently held in memory"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "fieldguard_http_requests_total", Help: "Total HTTP requests"},
			[]string{"route", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fieldguard_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.validationsTotal,
		m.formChangesTotal,
		m.formsOpen,
		m.requestsTotal,
		m.requestDuration,
	)

	return m
}

func (m *Metrics) Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveValidation counts one validation of a value under policy.
func (m *Metrics) ObserveValidation(policy string, accepted bool) {
	if m == nil {
		return
	}
	m.validationsTotal.WithLabelValues(policy, result(accepted)).Inc()
}

// ObserveFormChange counts a form field change under the field's policy.
// Field names are client supplied and never become label values.
func (m *Metrics) ObserveFormChange(policy string, accepted bool) {
	if m == nil {
		return
	}
	m.formChangesTotal.WithLabelValues(policy, result(accepted)).Inc()
}

func (m *Metrics) FormOpened() {
	if m == nil {
		return
	}
	m.formsOpen.Inc()
}

func (m *Metrics) FormClosed() {
	if m == nil {
		return
	}
	m.formsOpen.Dec()
}

// Middleware records request counts and durations labelled by the matched
// chi route pattern, so path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func result(accepted bool) string {
	if accepted {
		return ResultAccepted
	}
	return ResultRejected
}
