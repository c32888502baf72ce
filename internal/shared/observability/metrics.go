package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "splc_stage_seconds",
		Help:    "Time spent in one front-end stage (lex, parse, analyze).",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"stage"})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splc_runs_total",
		Help: "Total number of pipeline runs by outcome.",
	}, []string{"status"})

	TokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splc_tokens_total",
		Help: "Total number of tokens handed to the parser.",
	})

	TreeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "splc_tree_nodes",
		Help: "Number of nodes in the most recent syntax tree.",
	})

	SymbolsBound = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "splc_symbols_bound",
		Help: "Number of symbols bound by the most recent analysis.",
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "splc_diagnostics_total",
		Help: "Total number of errors reported, by code and rule.",
	}, []string{"code", "rule"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splc_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	ThrottledRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splc_throttled_runs_total",
		Help: "Total number of watch-triggered runs skipped by the rate limiter.",
	})

	HistoryWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splc_history_write_errors_total",
		Help: "Total number of run records that could not be persisted.",
	})
)
