// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics holds the Prometheus collectors for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for pro metrics requests
const (
	OutcomeOK        = "ok"
	OutcomeNoMatches = "no_valid_matches"
	OutcomeNotFound  = "not_found"
)

// Metrics owns a private registry so tests can create as many as they like
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RankTotal       *prometheus.CounterVec
	ProMetricsTotal *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
			},
			[]string{"route", "method"},
		),
		RankTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "standings_rank_total",
				Help: "Standings rankings by policy and result",
			},
			[]string{"policy", "result"},
		),
		ProMetricsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pro_metrics_total",
				Help: "Pro metrics computations by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RankTotal,
		m.ProMetricsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished request
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveRank counts one ranking attempt; ok is false for rejected policies
func (m *Metrics) ObserveRank(policy string, ok bool) {
	result := "ok"
	if !ok {
		result = "invalid_policy"
		policy = "invalid"
	}
	m.RankTotal.WithLabelValues(policy, result).Inc()
}

func (m *Metrics) ObserveProMetrics(outcome string) {
	m.ProMetricsTotal.WithLabelValues(outcome).Inc()
}
