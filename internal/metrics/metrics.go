// Package metrics exposes the learner's runtime telemetry as Prometheus
// collectors. It is additive observability, not part of the scoring
// algorithm: nothing in internal/logic or internal/learner imports this
// package directly, so the online loop stays pure and testable without a
// Prometheus registry in scope. Callers (the CLI) pull Stats/Theory sizes
// out of a *learner.Learner after each Step and feed them in here.
//
// To add a new metric: register it in Register() below and set it from
// the CLI's step loop.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ExamplesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oledgo_examples_processed_total",
			Help: "Cumulative number of examples run through Learner.Step.",
		},
	)

	Mistakes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oledgo_mistakes_total",
			Help: "Cumulative number of examples that triggered a mistake-driven structural update.",
		},
	)

	TheoryTopClauseCount = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oledgo_theory_top_clause_count",
			Help: "Current number of top-level clauses, by head predicate.",
		},
		[]string{"predicate"},
	)

	CumulativeTruePositives = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "oledgo_true_positives_total",
			Help: "Cumulative true positives across all Step calls.",
		},
	)

	CumulativeFalsePositives = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "oledgo_false_positives_total",
			Help: "Cumulative false positives across all Step calls.",
		},
	)

	CumulativeFalseNegatives = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "oledgo_false_negatives_total",
			Help: "Cumulative false negatives across all Step calls.",
		},
	)

	StepLatencySeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "oledgo_step_latency_seconds",
			Help:    "Wall-clock time spent in a single Learner.Step call.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Register adds every collector in this package to the default registry.
// Safe to call once, at process startup.
func Register() {
	prometheus.MustRegister(ExamplesProcessed)
	prometheus.MustRegister(Mistakes)
	prometheus.MustRegister(TheoryTopClauseCount)
	prometheus.MustRegister(CumulativeTruePositives)
	prometheus.MustRegister(CumulativeFalsePositives)
	prometheus.MustRegister(CumulativeFalseNegatives)
	prometheus.MustRegister(StepLatencySeconds)
}
