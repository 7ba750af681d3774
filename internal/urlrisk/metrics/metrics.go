package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for URL analysis.
type Metrics struct {
	// Served analyses by risk level and source (fresh, cache)
	Analyses *prometheus.CounterVec

	// Engine plus side effects, per URL
	AnalyzeLatency prometheus.Histogram

	Scores prometheus.Histogram

	// Cache lookups by result (hit, miss, error)
	CacheLookups *prometheus.CounterVec

	// Alerts handed to the publisher by outcome (ok, error)
	Alerts *prometheus.CounterVec

	// Best-effort side effects that failed, by component
	SideEffectFailures *prometheus.CounterVec

	BatchSize prometheus.Histogram
}

// New registers the analysis metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phishshield_analyses_total",
			Help: "URL analyses served by risk level and source",
		}, []string{"level", "source"}),

		AnalyzeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "phishshield_analyze_duration_seconds",
			Help:    "Duration of a single URL analysis including cache and history",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		Scores: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "phishshield_risk_score",
			Help:    "Distribution of risk scores",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phishshield_cache_lookups_total",
			Help: "Assessment cache lookups by result",
		}, []string{"result"}),

		Alerts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phishshield_alerts_total",
			Help: "High-risk alerts published by outcome",
		}, []string{"outcome"}),

		SideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phishshield_side_effect_failures_total",
			Help: "Failed best-effort operations by component",
		}, []string{"component"}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "phishshield_batch_size",
			Help:    "Number of URLs per batch request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		}),
	}
}

// ObserveAnalysis records a served analysis.
func (m *Metrics) ObserveAnalysis(level string, cached bool, score float64, d time.Duration) {
	if m == nil {
		return
	}
	source := "fresh"
	if cached {
		source = "cache"
	}
	m.Analyses.WithLabelValues(level, source).Inc()
	m.Scores.Observe(score)
	m.AnalyzeLatency.Observe(d.Seconds())
}

// IncrementCacheLookup records a cache lookup result.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(result).Inc()
	}
}

// IncrementAlert records a publish attempt.
func (m *Metrics) IncrementAlert(outcome string) {
	if m != nil {
		m.Alerts.WithLabelValues(outcome).Inc()
	}
}

// IncrementSideEffectFailure records a swallowed cache, history or publisher error.
func (m *Metrics) IncrementSideEffectFailure(component string) {
	if m != nil {
		m.SideEffectFailures.WithLabelValues(component).Inc()
	}
}

// ObserveBatchSize records the number of URLs in a batch.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
