// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condominio/condoadmin/internal/platform/metrics"
)

/*
TestMetrics_Counters verifies the security counters and the HTTP instrumentation.
*/
func TestMetrics_Counters(t *testing.T) {
	collector := metrics.New()

	collector.RecordDecision("csrf", "rejected")
	collector.RecordDecision("csrf", "rejected")
	collector.RecordFailOpen("login")

	router := chi.NewRouter()
	router.Use(collector.Instrument)
	router.Get("/api/casas/{id}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusTeapot)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/casas/9", nil))
	assert.Equal(t, http.StatusTeapot, recorder.Code)

	count, err := testutil.GatherAndCount(collector.Registry(),
		"security_pipeline_decisions_total",
		"security_rate_limit_fail_open_total",
		"http_requests_total",
	)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	scrape := httptest.NewRecorder()
	collector.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `route="/api/casas/{id}"`)
	assert.Contains(t, scrape.Body.String(), `security_pipeline_decisions_total{outcome="rejected",stage="csrf"} 2`)
}
