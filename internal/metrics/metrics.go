package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valumetric_calculations_total",
			Help: "Total number of calculations by engine and outcome",
		},
		[]string{"engine", "outcome"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "valumetric_calculation_duration_seconds",
			Help:    "Duration of calculations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"engine"},
	)

	ConsistencyRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "valumetric_ahp_consistency_ratio",
			Help:    "Consistency ratio of evaluated pairwise comparison matrices",
			Buckets: []float64{0.02, 0.05, 0.08, 0.1, 0.15, 0.2, 0.3, 0.5, 1},
		},
	)

	InconsistentMatrices = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "valumetric_ahp_inconsistent_total",
			Help: "Total number of matrices whose consistency ratio exceeded the threshold",
		},
	)

	HcroiZones = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valumetric_hcroi_zone_total",
			Help: "Labor return evaluations by zone",
		},
		[]string{"zone"},
	)

	WeightCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valumetric_weight_cache_lookups_total",
			Help: "Current weight lookups by source that answered",
		},
		[]string{"source"},
	)
)

// Engine labels.
const (
	EngineAHP   = "ahp"
	EngineHCROI = "hcroi"
)

// Outcome returns the outcome label for err.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
