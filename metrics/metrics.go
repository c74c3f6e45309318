// Package metrics exposes Prometheus instrumentation for the assessment API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_api_reloads_total",
		Help: "Total number of successful dataset reloads.",
	})
	ReloadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_api_reload_failures_total",
		Help: "Total number of failed dataset reloads.",
	})
	PredictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_api_predictions_total",
		Help: "Total number of successful predictions served.",
	})
	PredictionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assessment_api_prediction_failures_total",
		Help: "Total number of rejected or failed prediction requests.",
	})
	ReloadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "assessment_api_reload_duration_seconds",
		Help:    "Duration of a full reload cycle (fetch, train, store).",
		Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "assessment_api_dataset_rows",
		Help: "Number of assessment rows persisted by the last reload.",
	})
)
