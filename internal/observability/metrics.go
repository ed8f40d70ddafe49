package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analytics pipeline.
type Metrics struct {
	RunsTotal        prometheus.Counter
	RunFailures      prometheus.Counter
	CitiesFetched    prometheus.Counter
	FetchErrors      prometheus.Counter
	AlertsGenerated  *prometheus.CounterVec // label: type
	NotifyErrors     prometheus.Counter
	PipelineReady    prometheus.Gauge
	LastRunAnomalies prometheus.Gauge

	ObservationsPerRun prometheus.Histogram
	RunDuration        prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RunsTotal,
		m.RunFailures,
		m.CitiesFetched,
		m.FetchErrors,
		m.AlertsGenerated,
		m.NotifyErrors,
		m.PipelineReady,
		m.LastRunAnomalies,
		m.ObservationsPerRun,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_analytics",
			Name:      "runs_total",
			Help:      "Total pipeline runs attempted.",
		}),
		RunFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_analytics",
			Name:      "run_failures_total",
			Help:      "Total pipeline runs that ended in an error.",
		}),
		CitiesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_analytics",
			Name:      "cities_fetched_total",
			Help:      "Total per-city forecasts successfully fetched.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_analytics",
			Name:      "fetch_errors_total",
			Help:      "Total per-city fetches that failed after all retries.",
		}),
		AlertsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_analytics",
			Name:      "alerts_generated_total",
			Help:      "Alerts generated by threshold type.",
		}, []string{"type"}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_analytics",
			Name:      "notify_errors_total",
			Help:      "Failures publishing run results to the notification sink.",
		}),
		PipelineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_analytics",
			Name:      "pipeline_ready",
			Help:      "1 once at least one run has completed successfully.",
		}),
		LastRunAnomalies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_analytics",
			Name:      "last_run_anomalies",
			Help:      "Temperature anomalies flagged in the most recent run.",
		}),
		ObservationsPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_analytics",
			Name:      "observations_per_run",
			Help:      "Hourly observation rows processed per pipeline run.",
			Buckets:   []float64{24, 168, 500, 1000, 2500, 5000, 10000},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_analytics",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete fetch-analyze-store-notify run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}
