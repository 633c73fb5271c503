package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mfarag11047/RepCoach/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestMetrics(t *testing.T) {
	metricsManager, reg := metrics.NewTestManagerAndRegistry()

	r := mux.NewRouter()
	r.HandleFunc("/workouts/{key}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods("GET").Name("get-workout")
	r.HandleFunc("/recovery", func(w http.ResponseWriter, r *http.Request) {}).Methods("GET")
	r.Use(RequestMetrics(metricsManager))

	for _, path := range []string{"/workouts/a", "/workouts/b", "/recovery"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("GET", "404")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRequests.WithLabelValues("GET", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	routes := map[string]uint64{}
	for _, mf := range families {
		if mf.GetName() != "backend_test_server_request_duration_seconds" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" {
					routes[l.GetValue()] = m.GetHistogram().GetSampleCount()
				}
			}
		}
	}
	assert.Equal(t, map[string]uint64{"get-workout": 2, "/recovery": 1}, routes)
}
