package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewAssignmentPassesTotal returns a Prometheus counter for the number of completed assignment passes
func NewAssignmentPassesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_passes_total",
		Help: "Total number of completed assignment passes",
	})
}

// NewOrdersMatchedTotal returns a Prometheus counter for the number of orders matched to a partner
func NewOrdersMatchedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_matched_total",
		Help: "Total number of orders matched to a delivery partner",
	})
}

// NewOrdersUnmatchedTotal returns a Prometheus counter for the number of orders left without a partner
func NewOrdersUnmatchedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_unmatched_total",
		Help: "Total number of orders left without a delivery partner after a pass",
	})
}

// NewPassDurationSeconds returns a Prometheus histogram for assignment pass duration
func NewPassDurationSeconds() prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "assignment_pass_duration_seconds",
		Help:    "Duration of a single assignment pass",
		Buckets: prometheus.DefBuckets,
	})
}
