package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts handled requests by method, route and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranker_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures server response time.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// RankDuration measures personal rank computations per graph and outcome.
	RankDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranker_personal_rank_duration_seconds",
			Help:    "Duration of personal rank computations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		},
		[]string{"graph", "status"},
	)

	// RankResults tracks the number of returned vertices per computation.
	RankResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ranker_personal_rank_results",
			Help:    "Number of vertices returned by personal rank",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000, 10000},
		},
		[]string{"graph"},
	)

	// GraphEdges tracks the number of edges of in-memory graphs.
	GraphEdges = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ranker_graph_edges_total",
			Help: "Total number of edges of in-memory graphs",
		},
		[]string{"graph"},
	)
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ObserveRank starts timing a rank computation on graph.
// The returned function records the duration with the final status.
func ObserveRank(graph string) func(status string) {
	start := time.Now()
	return func(status string) {
		RankDuration.WithLabelValues(graph, status).Observe(time.Since(start).Seconds())
	}
}

// ObserveResults records the result size of a rank computation on graph
func ObserveResults(graph string, n int) {
	RankResults.WithLabelValues(graph).Observe(float64(n))
}
