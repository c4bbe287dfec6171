// Package telemetry holds the Prometheus collectors shared across the
// pipeline. Everything registers against the default registry and is
// exposed by the HTTP surface at /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal counts completed analyses by outcome.
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamepulse_analyses_total",
		Help: "Total analyses by result (success or failure)",
	}, []string{"result"})

	// AnalysisDuration tracks end-to-end analysis latency.
	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gamepulse_analysis_duration_seconds",
		Help:    "End-to-end analysis duration in seconds",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	})

	// SourceFailures counts provider calls that settled with an error.
	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamepulse_source_failures_total",
		Help: "Provider call failures by source",
	}, []string{"source"})

	// ProviderRequests counts outbound provider requests by status.
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamepulse_provider_requests_total",
		Help: "Outbound provider requests by provider and status",
	}, []string{"provider", "status"})

	// ProviderLatency tracks outbound request latency per provider.
	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gamepulse_provider_latency_seconds",
		Help:    "Outbound provider request latency in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"provider"})

	// CacheHits and CacheMisses track result-cache effectiveness.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamepulse_cache_hits_total",
		Help: "Analysis results served from cache",
	})
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gamepulse_cache_misses_total",
		Help: "Analysis cache lookups that missed",
	})
)
