package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldguard/internal/metrics"
)

func TestObserveValidation(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.ObserveValidation("AlphaNumeric", true)
	m.ObserveValidation("AlphaNumeric", true)
	m.ObserveValidation("References", false)

	expected := `
# HELP fieldguard_validations_total Total field validations
# TYPE fieldguard_validations_total counter
fieldguard_validations_total{policy="AlphaNumeric",result="accepted"} 2
fieldguard_validations_total{policy="References",result="rejected"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fieldguard_validations_total"))
}

func TestFormInstruments(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	m.FormOpened()
	m.FormOpened()
	m.FormClosed()
	m.ObserveFormChange("AlphaNumeric", false)
	m.ObserveFormChange("AlphaNumeric", false)

	expected := `
# HELP fieldguard_forms_open Forms currently held in memory
# TYPE fieldguard_forms_open gauge
fieldguard_forms_open 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fieldguard_forms_open"))

	changes := `
# HELP fieldguard_form_changes_total Total form field changes by policy
# TYPE fieldguard_form_changes_total counter
fieldguard_form_changes_total{policy="AlphaNumeric",result="rejected"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(changes), "fieldguard_form_changes_total"))
}

func TestNilMetricsIsNoop(t *testing.T) {
	t.Parallel()

	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveValidation("AlphaNumeric", true)
		m.ObserveFormChange("References", true)
		m.FormOpened()
		m.FormClosed()
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.Middleware(next))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/forms/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler(reg))

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/forms/"+id, nil))
	}

	expected := `
# HELP fieldguard_http_requests_total Total HTTP requests
# TYPE fieldguard_http_requests_total counter
fieldguard_http_requests_total{code="404",method="GET",route="/forms/{id}"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "fieldguard_http_requests_total"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fieldguard_http_request_duration_seconds")
}
