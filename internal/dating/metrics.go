package dating

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_matches_total",
			Help: "Total number of matches created",
		},
	)

	matchesClosedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dating_matches_closed_total",
			Help: "Total number of matches closed",
		},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dating_compatibility_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

func RecordMatch() {
	matchesTotal.Inc()
}

func RecordMatchClosed() {
	matchesClosedTotal.Inc()
}

func RecordCompatibilityScore(score float64) {
	compatibilityScores.Observe(score)
}
