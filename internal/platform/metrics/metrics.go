// Copyright (c) 2026 Condoadmin. All rights reserved.
// Author: dev@condoadmin.mx

/*
Package metrics owns the Prometheus collectors exported on /metrics.

Collectors are registered on a private [prometheus.Registry] held by
[Metrics], so tests can build as many instances as they need.

Exported families:

  - http_requests_total / http_request_duration_seconds / http_in_flight_requests
  - security_pipeline_decisions_total{stage,outcome}
  - security_rate_limit_fail_open_total{bucket}
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles every collector of the API process.
type Metrics struct {
	registry *prometheus.Registry

	inFlight        prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	decisions *prometheus.CounterVec
	failOpen  *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	metrics := &Metrics{
		registry: prometheus.NewRegistry(),

		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "security_pipeline_decisions_total",
			Help: "Security pipeline stage outcomes.",
		}, []string{"stage", "outcome"}),
		failOpen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "security_rate_limit_fail_open_total",
			Help: "Requests admitted because the rate limit store was unavailable.",
		}, []string{"bucket"}),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.inFlight,
		metrics.requestsTotal,
		metrics.requestDuration,
		metrics.decisions,
		metrics.failOpen,
	)

	return metrics
}

// Registry exposes the underlying registry, mainly for tests.
func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (metrics *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{})
}

// RecordDecision counts one security stage outcome (e.g. "csrf", "rejected").
func (metrics *Metrics) RecordDecision(stage, outcome string) {
	metrics.decisions.WithLabelValues(stage, outcome).Inc()
}

// RecordFailOpen counts a request admitted while the limiter store was down.
func (metrics *Metrics) RecordFailOpen(bucket string) {
	metrics.failOpen.WithLabelValues(bucket).Inc()
}

// Instrument measures request count, latency and concurrency. The route
// label uses the chi pattern to keep cardinality bounded.
func (metrics *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		metrics.inFlight.Inc()
		defer metrics.inFlight.Dec()

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}
		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := strconv.Itoa(recorder.status)
		metrics.requestDuration.WithLabelValues(request.Method, route, status).Observe(time.Since(start).Seconds())
		metrics.requestsTotal.WithLabelValues(request.Method, route, status).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(status int) {
	recorder.status = status
	recorder.ResponseWriter.WriteHeader(status)
}
