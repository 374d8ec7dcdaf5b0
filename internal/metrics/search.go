package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roundsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roundsearch",
			Name:      "search_duration_seconds",
			Help:      "Search request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	SearchCandidatesFetched = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "roundsearch",
			Name:      "search_candidates_fetched",
			Help:      "Raw candidates fetched per search before refinement",
			Buckets:   []float64{0, 10, 25, 50, 100, 200, 500},
		},
		[]string{"mode"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchCandidatesFetched)
	searchMetricsRegistered = true
}

// ObserveSearch records one search request outcome.
func ObserveSearch(mode, status string, elapsed time.Duration) {
	SearchRequestsTotal.WithLabelValues(mode, status).Inc()
	if status == "ok" {
		SearchDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
	}
}

// ObserveCandidates records the raw fetch size of one search.
func ObserveCandidates(mode string, fetched int) {
	SearchCandidatesFetched.WithLabelValues(mode).Observe(float64(fetched))
}
