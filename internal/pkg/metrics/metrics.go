package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "revenda_"

var (
	registerOnce sync.Once

	settlementRuns         *prometheus.CounterVec
	settlementLatency      *prometheus.HistogramVec
	settlementStepFailures *prometheus.CounterVec
	bandValidations        *prometheus.CounterVec
)

// Init registers settlement metrics with the default registry. Calls after
// the first are no-ops; observing before Init is safe and records nothing.
func Init() {
	registerOnce.Do(func() {
		settlementRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_runs_total",
				Help: "Total settlement runs by workflow and status",
			},
			[]string{"workflow", "status"},
		)
		settlementLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "settlement_latency_seconds",
				Help:    "Settlement run latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"workflow", "status"},
		)
		settlementStepFailures = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "settlement_step_failures_total",
				Help: "Settlement writes that failed mid-sequence, by workflow and step",
			},
			[]string{"workflow", "step"},
		)
		bandValidations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "pricing_band_validations_total",
				Help: "Pricing band validations by result",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(settlementRuns, settlementLatency, settlementStepFailures, bandValidations)
	})
}

// ObserveSettlement records one finished settlement run.
func ObserveSettlement(workflow, status string, duration time.Duration) {
	if settlementRuns != nil {
		settlementRuns.WithLabelValues(workflow, status).Inc()
	}
	if settlementLatency != nil {
		settlementLatency.WithLabelValues(workflow, status).Observe(duration.Seconds())
	}
}

// IncStepFailure counts a store write that failed partway through a workflow.
func IncStepFailure(workflow, step string) {
	if settlementStepFailures != nil {
		settlementStepFailures.WithLabelValues(workflow, step).Inc()
	}
}

// IncBandValidation counts a pricing band validation by result.
func IncBandValidation(result string) {
	if result == "" {
		result = "unknown"
	}
	if bandValidations != nil {
		bandValidations.WithLabelValues(result).Inc()
	}
}
