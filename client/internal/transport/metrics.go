package transport

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	codeNetwork  = "network_error"
	codeCanceled = "canceled"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zerocode_client",
			Name:      "requests_total",
			Help:      "Backend requests by operation and outcome.",
		},
		[]string{"operation", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zerocode_client",
			Name:      "request_duration_seconds",
			Help:      "Time until response headers arrive, per operation.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observe(operation, code string, start time.Time) {
	requestsTotal.WithLabelValues(operation, code).Inc()
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func statusLabel(status int) string { return strconv.Itoa(status) }
