package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the query service collectors.
type Metrics struct {
	Queries       *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
	CacheLookups  *prometheus.CounterVec
	EventsFailed  prometheus.Counter
}

// NewMetrics registers the query service collectors on reg under the namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Queries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_queries_total",
			Help:      "The total number of flight queries",
		}, []string{"operation"}),
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_query_duration_seconds",
			Help:      "Time taken to answer flight queries, simulated delay included",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_cache_lookups_total",
			Help:      "Flight list cache lookups by result",
		}, []string{"result"}),
		EventsFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deal_events_failed_total",
			Help:      "Deal events that could not be published",
		}),
	}
}

// WorkerMetrics holds the deal event worker collectors.
type WorkerMetrics struct {
	EventsConsumed *prometheus.CounterVec
	EventsSkipped  prometheus.Counter
}

func NewWorkerMetrics(namespace string, reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		EventsConsumed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deal_events_consumed_total",
			Help:      "Deal events handled by the worker",
		}, []string{"type"}),
		EventsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deal_events_skipped_total",
			Help:      "Messages the worker could not decode",
		}),
	}
}
