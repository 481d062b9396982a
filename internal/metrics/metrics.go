// Package metrics holds the prometheus collectors of the question pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "urban_assistant"

var (
	PipelineSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "router",
		Name:      "pipeline_selections_total",
		Help:      "Questions dispatched per pipeline, split by whether the default was used",
	}, []string{"pipeline", "source"})

	ActionSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "selection",
		Name:      "actions_total",
		Help:      "Actions resolved per tool set and stage",
	}, []string{"tool_set", "stage", "action"})

	VerifierAbstentions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "selection",
		Name:      "verifier_abstentions_total",
		Help:      "Verifier responses without a usable marker line",
	}, []string{"tool_set"})

	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "aggregator",
		Name:      "fetch_failures_total",
		Help:      "Data-fetch calls dropped from the context",
	}, []string{"action"})

	AuditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "audit",
		Name:      "dropped_total",
		Help:      "Question logs acked without being persisted",
	})

	StageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "stage_latency_seconds",
		Help:      "Latency of each orchestration stage",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"stage"})
)
