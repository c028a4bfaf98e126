// Package metrics defines Prometheus metrics for tcgradar.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tcgradar"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Filtering metrics.
var (
	ListingsFilteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_filtered_total",
		Help:      "Total number of listings run through the filter.",
	})

	ListingsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_rejected_total",
		Help:      "Total number of listings rejected, by card type.",
	}, []string{"card_type"})

	FilterConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "filter_confidence",
		Help:      "Distribution of filter confidence scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})
)

// Resolution metrics.
var (
	EntitiesResolvedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entities_resolved_total",
		Help:      "Total number of listings resolved to a canonical entity.",
	})

	ResolutionFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolution_failures_total",
		Help:      "Total number of listings that passed the filter but failed resolution.",
	})

	ResolutionConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resolution_confidence",
		Help:      "Distribution of entity resolution confidence scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
)

// Ingestion metrics.
var (
	IngestionRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestion_runs_total",
		Help:      "Total number of ingestion runs.",
	})

	IngestionErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestion_errors_total",
		Help:      "Total number of ingestion errors.",
	})

	IngestionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of ingestion runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	SourceCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_calls_total",
		Help:      "Total cumulative marketplace source calls.",
	})

	SourceDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "source_daily_usage",
		Help:      "Current daily source call count within the rolling 24-hour window.",
	})

	SourceDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "source_daily_limit_hits_total",
		Help:      "Total number of times the daily source call limit was reached.",
	})
)

// Decision metrics.
var (
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Total number of recommendations issued, by verdict.",
	}, []string{"recommendation"})
)
