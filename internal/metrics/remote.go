package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Remote cluster call Prometheus metrics.
var (
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vectoradmin",
			Name:      "remote_requests_total",
			Help:      "Total number of remote cluster requests",
		},
		[]string{"op", "status"},
	)

	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vectoradmin",
			Name:      "remote_request_duration_seconds",
			Help:      "Remote cluster request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op"},
	)

	BatchRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vectoradmin",
			Name:      "batch_records_total",
			Help:      "Total batch-ingested records by outcome",
		},
		[]string{"collection", "result"}, // "ok" / "failed"
	)

	ClusterCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vectoradmin",
			Name:      "cluster_cache_total",
			Help:      "Cluster facade cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

// ObserveRemoteCall records one remote cluster call.
func ObserveRemoteCall(op string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RemoteRequestsTotal.WithLabelValues(op, status).Inc()
	RemoteRequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

var remoteMetricsRegistered bool

// RegisterRemoteMetrics registers Prometheus remote-call metrics. Must be called once from main.
func RegisterRemoteMetrics() {
	if remoteMetricsRegistered {
		return
	}
	prometheus.MustRegister(RemoteRequestsTotal)
	prometheus.MustRegister(RemoteRequestDuration)
	prometheus.MustRegister(BatchRecordsTotal)
	prometheus.MustRegister(ClusterCacheTotal)
	remoteMetricsRegistered = true
}
