package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boardsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests by outcome",
		},
		[]string{"outcome"}, // "ok" / "short_query" / "empty_scope" / "error"
	)

	SearchFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "boardsearch",
			Name:      "search_fetch_duration_seconds",
			Help:      "Per-entity fetch duration in seconds",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"entity", "phase"},
	)

	SearchFetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boardsearch",
			Name:      "search_fetch_errors_total",
			Help:      "Total fetch errors propagated to the caller",
		},
		[]string{"entity", "phase"},
	)

	SearchFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boardsearch",
			Name:      "search_fallback_total",
			Help:      "Fuzzy fetches served by the in-process fallback",
		},
		[]string{"entity"},
	)

	SearchItemsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "boardsearch",
			Name:      "search_items_returned",
			Help:      "Items returned per search page",
			Buckets:   []float64{0, 1, 5, 10, 20, 30, 50},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchFetchDuration)
	prometheus.MustRegister(SearchFetchErrorsTotal)
	prometheus.MustRegister(SearchFallbackTotal)
	prometheus.MustRegister(SearchItemsReturned)
	searchMetricsRegistered = true
}
